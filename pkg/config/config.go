package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"main/pkg/fsutil"
	"main/pkg/models"
)

const (
	configFile     = "config.json"
	defaultQuality = "high"
	defaultOutPath = "Melodix downloads"
)

// Config represents the application configuration
type Config struct {
	Quality     string `json:"quality"`
	OutPath     string `json:"outPath"`
	ResolveOnly bool   `json:"resolveOnly"`
	Urls        []string
}

// Args represents command line arguments
type Args struct {
	Urls        []string `arg:"positional,required" help:"Track URLs, track IDs, or .txt list files"`
	Quality     string   `arg:"-q,--quality" help:"Quality tier (high, medium, low)"`
	OutPath     string   `arg:"-o,--output" help:"Output directory"`
	ResolveOnly bool     `arg:"--resolve-only" help:"Print resolved stream URLs without downloading"`
}

// ParseCfg parses configuration from config.json and command line arguments
func ParseCfg() (*Config, error) {
	cfg, err := readConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	args := parseArgs()
	return mergeArgs(cfg, args)
}

// readConfig reads configuration from the given file; a missing file is not
// an error, just an empty config.
func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// parseArgs parses command line arguments
func parseArgs() *Args {
	var args Args
	arg.MustParse(&args)
	return &args
}

// mergeArgs overlays command line arguments onto the file config and
// validates the result
func mergeArgs(cfg *Config, args *Args) (*Config, error) {
	if args.Quality != "" {
		cfg.Quality = args.Quality
	}
	if cfg.Quality == "" {
		cfg.Quality = defaultQuality
	}
	if !models.IsValidQuality(cfg.Quality) {
		return nil, fmt.Errorf("unknown quality tier: %q (want high, medium or low)", cfg.Quality)
	}

	if args.OutPath != "" {
		cfg.OutPath = args.OutPath
	}
	if cfg.OutPath == "" {
		cfg.OutPath = defaultOutPath
	}

	if args.ResolveOnly {
		cfg.ResolveOnly = true
	}

	urls, err := processUrls(args.Urls)
	if err != nil {
		return nil, err
	}
	cfg.Urls = urls

	return cfg, nil
}

// processUrls processes URL arguments, handling text files
func processUrls(urls []string) ([]string, error) {
	var processed []string

	for _, url := range urls {
		if strings.HasSuffix(url, ".txt") {
			lines, err := fsutil.ReadTxtFile(url)
			if err != nil {
				return nil, err
			}
			for _, line := range lines {
				if !contains(processed, line) {
					processed = append(processed, strings.TrimSuffix(line, "/"))
				}
			}
		} else {
			if !contains(processed, url) {
				processed = append(processed, strings.TrimSuffix(url, "/"))
			}
		}
	}

	return processed, nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
