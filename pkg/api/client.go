package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/grafov/m3u8"
	"main/pkg/models"
)

const (
	playerDataURL = "https://www.melodix.com/audio-player-data/track"
	playerOrigin  = "https://www.melodix.com"
	playerReferer = "https://www.melodix.com/"
	userAgent     = "Melodix/5.2.18 (Android; 12; Scale/2.0; en)"

	requestTimeout = 30 * time.Second
)

var (
	jar, _ = cookiejar.New(nil)
	client = &http.Client{Jar: jar, Timeout: requestTimeout}
)

// Client represents the API client
type Client struct {
	// PlayerDataURL is overridable for tests; defaults to the fixed endpoint.
	PlayerDataURL string
}

// NewClient creates a new API client
func NewClient() *Client {
	return &Client{PlayerDataURL: playerDataURL}
}

// GetHTTPClient returns the underlying HTTP client
func (c *Client) GetHTTPClient() *http.Client {
	return client
}

// GetStreamData requests the player data for a track/quality pair and
// returns the data block of a successful envelope. Every other envelope
// shape yields ErrNoStreamData.
func (c *Client) GetStreamData(trackID, quality, format string) (*models.StreamData, error) {
	form := url.Values{}
	form.Set("trackId", trackID)
	form.Set("quality", quality)
	form.Set("format", format)

	req, err := http.NewRequest(http.MethodPost, c.PlayerDataURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Add("User-Agent", userAgent)
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Origin", playerOrigin)
	req.Header.Add("Referer", playerReferer)

	do, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer do.Body.Close()

	if do.StatusCode != http.StatusOK {
		return nil, NetworkError{URL: c.PlayerDataURL, Status: do.StatusCode, Message: do.Status}
	}

	var obj models.StreamEnvelope
	err = json.NewDecoder(do.Body).Decode(&obj)
	if err != nil {
		return nil, err
	}

	if !obj.IsSuccess() {
		return nil, ErrNoStreamData
	}

	return obj.Data, nil
}

// DownloadFile downloads a file from the given URL
func (c *Client) DownloadFile(url, referer string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if referer != "" {
		req.Header.Add("Referer", referer)
	}
	req.Header.Add("User-Agent", userAgent)
	req.Header.Add("Range", "bytes=0-")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, errors.New(resp.Status)
	}

	return resp, nil
}

// GetM3U8Playlist retrieves and parses an M3U8 master playlist
func (c *Client) GetM3U8Playlist(url string) (*m3u8.MasterPlaylist, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	playlist, _, err := m3u8.DecodeFrom(resp.Body, true)
	if err != nil {
		return nil, err
	}

	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok {
		return nil, errors.New("not a master playlist")
	}

	return master, nil
}

// GetMediaPlaylist retrieves and parses a media playlist
func (c *Client) GetMediaPlaylist(url string) (*m3u8.MediaPlaylist, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	playlist, _, err := m3u8.DecodeFrom(resp.Body, true)
	if err != nil {
		return nil, err
	}

	media, ok := playlist.(*m3u8.MediaPlaylist)
	if !ok {
		return nil, errors.New("not a media playlist")
	}

	return media, nil
}
