package downloader

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxStateAge is how long a resume state stays usable; stale streams get
// re-fetched from the start since segment URLs expire server-side.
const maxStateAge = 24 * time.Hour

// ResumeState tracks segment-level progress of an HLS download
type ResumeState struct {
	FilePath     string    `json:"file_path"`
	ManifestURL  string    `json:"manifest_url"`
	SegmentsDone int       `json:"segments_done"`
	SegmentTotal int       `json:"segment_total"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ResumeManager handles download resume state persistence and validation
type ResumeManager struct {
	stateDir string
}

// NewResumeManager creates a new resume manager
func NewResumeManager(stateDir string) *ResumeManager {
	return &ResumeManager{
		stateDir: stateDir,
	}
}

// getStateFilePath returns the path for a resume state file
func (rm *ResumeManager) getStateFilePath(filePath string) string {
	// Hash of the output path keeps the state file name filesystem-safe
	hash := md5.Sum([]byte(filePath))
	return filepath.Join(rm.stateDir, hex.EncodeToString(hash[:])+".resume.json")
}

// NewState creates a fresh resume state for a download
func (rm *ResumeManager) NewState(filePath, manifestURL string, segmentTotal int) *ResumeState {
	now := time.Now()
	return &ResumeState{
		FilePath:     filePath,
		ManifestURL:  manifestURL,
		SegmentsDone: 0,
		SegmentTotal: segmentTotal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SaveState saves the resume state to disk
func (rm *ResumeManager) SaveState(state *ResumeState) error {
	if err := os.MkdirAll(rm.stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	state.UpdatedAt = time.Now()
	stateFile := rm.getStateFilePath(state.FilePath)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume state: %w", err)
	}

	// Write to temporary file first for atomicity
	tempFile := stateFile + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write resume state: %w", err)
	}

	if err := os.Rename(tempFile, stateFile); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to save resume state: %w", err)
	}

	return nil
}

// LoadState loads the resume state from disk; no state is (nil, nil)
func (rm *ResumeManager) LoadState(filePath string) (*ResumeState, error) {
	stateFile := rm.getStateFilePath(filePath)

	data, err := os.ReadFile(stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read resume state: %w", err)
	}

	var state ResumeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume state: %w", err)
	}

	return &state, nil
}

// DeleteState removes the resume state file
func (rm *ResumeManager) DeleteState(filePath string) error {
	stateFile := rm.getStateFilePath(filePath)
	if err := os.Remove(stateFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete resume state: %w", err)
	}
	return nil
}

// Validate checks whether a loaded state can resume the given download
func (rm *ResumeManager) Validate(state *ResumeState, manifestURL string, segmentTotal int) error {
	if state.ManifestURL != manifestURL {
		return fmt.Errorf("manifest URL changed")
	}
	if state.SegmentTotal != segmentTotal {
		return fmt.Errorf("segment count mismatch: expected %d, got %d", state.SegmentTotal, segmentTotal)
	}
	if state.SegmentsDone < 0 || state.SegmentsDone > state.SegmentTotal {
		return fmt.Errorf("corrupt segment progress: %d of %d", state.SegmentsDone, state.SegmentTotal)
	}
	if time.Since(state.UpdatedAt) > maxStateAge {
		return fmt.Errorf("resume state is too old")
	}

	if _, err := os.Stat(state.FilePath); err != nil {
		return fmt.Errorf("partial file no longer exists")
	}

	return nil
}

// CleanupOldStates removes resume state files older than the specified duration
func (rm *ResumeManager) CleanupOldStates(maxAge time.Duration) error {
	entries, err := os.ReadDir(rm.stateDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".resume.json") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > maxAge {
			os.Remove(filepath.Join(rm.stateDir, entry.Name()))
		}
	}

	return nil
}
