package fsutil

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

// Cross-platform file permission constants
const (
	// Windows ignores execute permissions, so we use different values
	DefaultFilePermsWindows = 0666
	DefaultDirPermsWindows  = 0777
	DefaultFilePermsUnix    = 0644
	DefaultDirPermsUnix     = 0755
)

// GetFileMode returns appropriate file permissions for the current platform
func GetFileMode() os.FileMode {
	if runtime.GOOS == "windows" {
		return DefaultFilePermsWindows
	}
	return DefaultFilePermsUnix
}

// GetDirMode returns appropriate directory permissions for the current platform
func GetDirMode() os.FileMode {
	if runtime.GOOS == "windows" {
		return DefaultDirPermsWindows
	}
	return DefaultDirPermsUnix
}

// MakeDirs creates directories with cross-platform permissions
func MakeDirs(path string) error {
	return os.MkdirAll(path, GetDirMode())
}

// OpenFile opens a file with cross-platform permissions
func OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	if perm == 0 {
		perm = GetFileMode()
	}
	return os.OpenFile(name, flag, perm)
}

// WriteFile opens a file for writing with appropriate permissions
func WriteFile(name string) (*os.File, error) {
	return OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0)
}

// AppendFile opens a file for appending with appropriate permissions
func AppendFile(name string) (*os.File, error) {
	return OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0)
}

// ReadTxtFile reads non-empty lines from a text file
func ReadTxtFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// SanitizeFilename replaces characters that are unsafe in filenames
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
