package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"main/pkg/api"
	"main/pkg/config"
	"main/pkg/downloader"
	"main/pkg/fsutil"
	"main/pkg/logger"
	"main/pkg/models"
	"main/pkg/resolver"
)

func main() {
	fmt.Println(`
 _____     _         _ _        _____             _
|     |___| |___ ___| |_|_ _   | __  |___ ___ ___| |_ _ ___ ___
| | | | -_| | . | . | |_|_'_|  |    -| -_|_ -| . | | | | -_|  _|
|_|_|_|___|_|___|___|_|_|_,_|  |__|__|___|___|___|_|\_/|___|_|`)

	// Change to script directory
	scriptDir, err := getScriptDir()
	if err != nil {
		panic(err)
	}
	err = os.Chdir(scriptDir)
	if err != nil {
		panic(err)
	}

	// Parse configuration
	cfg, err := config.ParseCfg()
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to parse config/args")
		os.Exit(1)
	}

	if !cfg.ResolveOnly {
		err = fsutil.MakeDirs(cfg.OutPath)
		if err != nil {
			logger.GetLogger().WithError(err).Error("Failed to make output folder")
			os.Exit(1)
		}
	}

	// Initialize API client, resolver and downloader
	apiClient := api.NewClient()
	res := resolver.NewResolver(apiClient)
	dl := downloader.NewDownloader(apiClient, cfg)

	// Process URLs
	trackTotal := len(cfg.Urls)
	for trackNum, url := range cfg.Urls {
		fmt.Printf("Track %d of %d:\n", trackNum+1, trackTotal)

		trackID := models.CheckUrl(url)
		if trackID == "" {
			fmt.Println("Invalid URL:", url)
			continue
		}

		var resolved []*models.MediaURL
		if cfg.ResolveOnly || cfg.Quality == models.QualityTiers[0] {
			resolved = res.ResolveAll(trackID)
		} else {
			media, err := res.Resolve(trackID, cfg.Quality)
			if err != nil {
				logger.WrapError(err, map[string]interface{}{
					"track_id": trackID,
					"quality":  cfg.Quality,
					"url":      url,
				})
			} else {
				resolved = append(resolved, media)
			}
		}

		if len(resolved) == 0 {
			fmt.Println("No playable stream for this track.")
			continue
		}

		for _, media := range resolved {
			fmt.Printf("%s (%s Kbps, %s): %s\n", media.Quality, media.BitRate, media.Format, media.URL)

			if cfg.ResolveOnly {
				continue
			}

			err := dl.DownloadMedia(media, trackID)
			if err != nil {
				logger.WrapError(err, map[string]interface{}{
					"track_id": trackID,
					"quality":  media.Quality,
					"num":      trackNum + 1,
					"total":    trackTotal,
					"url":      url,
				})
			}
		}
	}
}

// getScriptDir returns the directory of the script
func getScriptDir() (string, error) {
	var (
		ok    bool
		err   error
		fname string
	)

	runFromSrc := wasRunFromSrc()
	if runFromSrc {
		_, fname, _, ok = runtime.Caller(0)
		if !ok {
			return "", fmt.Errorf("failed to get script filename")
		}
	} else {
		fname, err = os.Executable()
		if err != nil {
			return "", err
		}
	}

	return filepath.Dir(fname), nil
}

// wasRunFromSrc checks if the program was run from source
func wasRunFromSrc() bool {
	buildPath := filepath.Join(os.TempDir(), "go-build")
	return strings.HasPrefix(os.Args[0], buildPath)
}
