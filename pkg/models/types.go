package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dustin/go-humanize"
)

// MediaURL is the resolved output record for a single track/quality pair
type MediaURL struct {
	Quality string `json:"quality"`
	BitRate string `json:"bitRate"`
	URL     string `json:"url"`
	Format  string `json:"format"`
}

// StreamEnvelope represents the player-data API response envelope
type StreamEnvelope struct {
	APIStatus string      `json:"api_status"`
	Data      *StreamData `json:"data"`
}

// StreamData represents the data block of a successful envelope
type StreamData struct {
	StreamPath  string `json:"stream_path"`
	BitRate     string `json:"bit_rate"`
	TrackFormat string `json:"track_format"`
}

// IsSuccess reports whether the envelope carries usable stream data
func (e *StreamEnvelope) IsSuccess() bool {
	return e.APIStatus == "success" && e.Data != nil && e.Data.StreamPath != ""
}

// WriteCounter tracks download progress
type WriteCounter struct {
	Total      int64
	TotalStr   string
	Downloaded int64
	Percentage int
	StartTime  int64
}

// Write implements io.Writer interface for progress tracking
func (wc *WriteCounter) Write(p []byte) (int, error) {
	var speed int64 = 0
	n := len(p)
	wc.Downloaded += int64(n)

	// Calculate percentage, handling division by zero
	var percentage float64
	if wc.Total > 0 {
		percentage = float64(wc.Downloaded) / float64(wc.Total) * float64(100)
	}
	wc.Percentage = int(percentage)

	toDivideBy := time.Now().UnixMilli() - wc.StartTime
	if toDivideBy != 0 {
		speed = int64(wc.Downloaded) / toDivideBy * 1000
	}
	fmt.Printf("\r%d%% @ %s/s, %s/%s ", wc.Percentage,
		humanize.Bytes(uint64(speed)),
		humanize.Bytes(uint64(wc.Downloaded)), wc.TotalStr)
	return n, nil
}

// QualityTiers lists the supported tiers, best first
var QualityTiers = [3]string{"high", "medium", "low"}

// QualityRates maps a tier to its nominal bitrate in Kbps
var QualityRates = map[string]string{
	"high":   "320",
	"medium": "128",
	"low":    "64",
}

// IsValidQuality reports whether the tier name is recognized
func IsValidQuality(quality string) bool {
	_, ok := QualityRates[quality]
	return ok
}

// URL patterns for track pages and bare track IDs
var RegexStrings = [3]string{
	`^https://www\.melodix\.com/song/[\w-]+/(\d+)/?$`,
	`^https://melodix\.com/song/[\w-]+/(\d+)/?$`,
	`^(\d+)$`,
}

// CheckUrl checks URL pattern and returns the track ID
func CheckUrl(url string) string {
	for _, regexStr := range RegexStrings {
		regex := regexp.MustCompile(regexStr)
		match := regex.FindStringSubmatch(url)
		if match != nil {
			return match[1]
		}
	}
	return ""
}
