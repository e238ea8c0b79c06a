package downloader

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	urlPkg "net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"main/pkg/api"
	"main/pkg/config"
	"main/pkg/fsutil"
	"main/pkg/models"
)

// Downloader handles downloading of resolved media streams
type Downloader struct {
	apiClient *api.Client
	config    *config.Config
	resume    *ResumeManager
}

// NewDownloader creates a new downloader instance
func NewDownloader(apiClient *api.Client, cfg *config.Config) *Downloader {
	return &Downloader{
		apiClient: apiClient,
		config:    cfg,
		resume:    NewResumeManager(filepath.Join(cfg.OutPath, ".state")),
	}
}

// DownloadMedia downloads one resolved stream into the output directory.
// HLS URLs go through the playlist path, anything else is fetched directly.
func (d *Downloader) DownloadMedia(media *models.MediaURL, trackID string) error {
	name := fsutil.SanitizeFilename(trackID + "_" + media.Quality)

	if strings.Contains(media.URL, ".m3u8") {
		return d.DownloadHls(filepath.Join(d.config.OutPath, name+".ts"), media.URL)
	}
	return d.DownloadTrack(filepath.Join(d.config.OutPath, name+".m4a"), media.URL)
}

// DownloadTrack downloads a single track file with progress reporting
func (d *Downloader) DownloadTrack(trackPath, url string) error {
	f, err := fsutil.OpenFile(trackPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	resp, err := d.apiClient.DownloadFile(url, "https://www.melodix.com/")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	totalBytes := resp.ContentLength
	counter := &models.WriteCounter{
		Total:     totalBytes,
		TotalStr:  humanize.Bytes(uint64(totalBytes)),
		StartTime: time.Now().UnixMilli(),
	}

	_, err = io.Copy(f, io.TeeReader(resp.Body, counter))
	fmt.Println("")
	return err
}

// DownloadHls downloads an HLS stream: pick the best variant from the
// master playlist, then fetch the media playlist segments in order.
// Partially downloaded tracks are resumed at segment granularity.
func (d *Downloader) DownloadHls(trackPath, manifestURL string) error {
	mediaURL, err := d.pickVariant(manifestURL)
	if err != nil {
		return err
	}

	segURLs, err := d.GetSegUrls(mediaURL)
	if err != nil {
		return err
	}
	if len(segURLs) == 0 {
		return errors.New("media playlist has no segments")
	}

	startSeg := 0
	state, err := d.resume.LoadState(trackPath)
	if err == nil && state != nil {
		if d.resume.Validate(state, mediaURL, len(segURLs)) == nil {
			startSeg = state.SegmentsDone
			fmt.Printf("Resuming from segment %d...\n", startSeg+1)
		} else {
			state = nil
		}
	}
	if state == nil {
		state = d.resume.NewState(trackPath, mediaURL, len(segURLs))
		// Drop any partial data from an unresumable attempt.
		if err := os.Remove(trackPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	f, err := fsutil.AppendFile(trackPath)
	if err != nil {
		return err
	}
	defer f.Close()

	segTotal := len(segURLs)
	for segNum := startSeg; segNum < segTotal; segNum++ {
		fmt.Printf("\rSegment %d of %d.", segNum+1, segTotal)

		if err := d.downloadSegment(f, segURLs[segNum]); err != nil {
			return err
		}

		state.SegmentsDone = segNum + 1
		if err := d.resume.SaveState(state); err != nil {
			return err
		}
	}
	fmt.Println("")

	return d.resume.DeleteState(trackPath)
}

// pickVariant resolves the manifest to a media playlist URL. A master
// playlist yields its highest-bandwidth variant; a media playlist is used
// as-is.
func (d *Downloader) pickVariant(manifestURL string) (string, error) {
	master, err := d.apiClient.GetM3U8Playlist(manifestURL)
	if err != nil {
		if _, mediaErr := d.apiClient.GetMediaPlaylist(manifestURL); mediaErr == nil {
			return manifestURL, nil
		}
		return "", err
	}

	if len(master.Variants) == 0 {
		return "", errors.New("master playlist has no variants")
	}

	sort.Slice(master.Variants, func(x, y int) bool {
		return master.Variants[x].Bandwidth > master.Variants[y].Bandwidth
	})

	variantURI := master.Variants[0].URI
	if strings.HasPrefix(variantURI, "http") {
		return variantURI, nil
	}

	manBase, query, err := d.GetManifestBase(manifestURL)
	if err != nil {
		return "", err
	}
	return manBase + variantURI + query, nil
}

// GetManifestBase extracts base URL and query from a manifest URL
func (d *Downloader) GetManifestBase(manifestURL string) (string, string, error) {
	u, err := urlPkg.Parse(manifestURL)
	if err != nil {
		return "", "", err
	}
	path := u.Path
	lastPathIdx := strings.LastIndex(path, "/")
	base := u.Scheme + "://" + u.Host + path[:lastPathIdx+1]
	if u.RawQuery == "" {
		return base, "", nil
	}
	return base, "?" + u.RawQuery, nil
}

// GetSegUrls extracts absolute segment URLs from a media playlist
func (d *Downloader) GetSegUrls(manifestURL string) ([]string, error) {
	media, err := d.apiClient.GetMediaPlaylist(manifestURL)
	if err != nil {
		return nil, err
	}

	manBase, query, err := d.GetManifestBase(manifestURL)
	if err != nil {
		return nil, err
	}

	var segURLs []string
	for _, seg := range media.Segments {
		if seg == nil {
			break
		}
		segURL := seg.URI
		if !strings.HasPrefix(segURL, "http") {
			segURL = manBase + segURL + query
		}
		segURLs = append(segURLs, segURL)
	}
	return segURLs, nil
}

// downloadSegment appends one segment to the output file
func (d *Downloader) downloadSegment(f *os.File, segURL string) error {
	req, err := http.NewRequest(http.MethodGet, segURL, nil)
	if err != nil {
		return err
	}

	do, err := d.apiClient.GetHTTPClient().Do(req)
	if err != nil {
		return err
	}
	defer do.Body.Close()

	if do.StatusCode != http.StatusOK {
		return errors.New(do.Status)
	}

	_, err = io.Copy(f, do.Body)
	return err
}
