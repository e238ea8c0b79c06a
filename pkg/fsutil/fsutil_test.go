package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// TestSuite for fsutil package
type FsutilTestSuite struct {
	suite.Suite
	tempDir string
}

// SetupTest creates a temporary directory
func (suite *FsutilTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

// TestGetFileMode tests platform-appropriate file permissions
func (suite *FsutilTestSuite) TestGetFileMode() {
	mode := GetFileMode()
	if runtime.GOOS == "windows" {
		assert.Equal(suite.T(), os.FileMode(DefaultFilePermsWindows), mode)
	} else {
		assert.Equal(suite.T(), os.FileMode(DefaultFilePermsUnix), mode)
	}
}

// TestMakeDirs tests nested directory creation
func (suite *FsutilTestSuite) TestMakeDirs() {
	nested := filepath.Join(suite.tempDir, "a", "b", "c")

	err := MakeDirs(nested)

	assert.NoError(suite.T(), err)
	stat, err := os.Stat(nested)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), stat.IsDir())
}

// TestMakeDirs_Existing tests that creating an existing directory succeeds
func (suite *FsutilTestSuite) TestMakeDirs_Existing() {
	err := MakeDirs(suite.tempDir)
	assert.NoError(suite.T(), err)
}

// TestWriteFile tests file creation with default permissions
func (suite *FsutilTestSuite) TestWriteFile() {
	path := filepath.Join(suite.tempDir, "out.ts")

	f, err := WriteFile(path)
	assert.NoError(suite.T(), err)
	_, err = f.WriteString("data")
	assert.NoError(suite.T(), err)
	f.Close()

	content, err := os.ReadFile(path)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "data", string(content))
}

// TestAppendFile tests appending to an existing file
func (suite *FsutilTestSuite) TestAppendFile() {
	path := filepath.Join(suite.tempDir, "out.ts")

	for _, chunk := range []string{"seg1", "seg2"} {
		f, err := AppendFile(path)
		assert.NoError(suite.T(), err)
		_, err = f.WriteString(chunk)
		assert.NoError(suite.T(), err)
		f.Close()
	}

	content, err := os.ReadFile(path)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "seg1seg2", string(content))
}

// TestReadTxtFile tests reading a list file with blank lines
func (suite *FsutilTestSuite) TestReadTxtFile() {
	path := filepath.Join(suite.tempDir, "tracks.txt")
	err := os.WriteFile(path, []byte("48213\n\n  66001  \n\n"), 0644)
	suite.Require().NoError(err)

	lines, err := ReadTxtFile(path)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"48213", "66001"}, lines)
}

// TestReadTxtFile_Missing tests reading a nonexistent file
func (suite *FsutilTestSuite) TestReadTxtFile_Missing() {
	lines, err := ReadTxtFile(filepath.Join(suite.tempDir, "nope.txt"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), lines)
}

// TestSanitizeFilename tests unsafe character replacement
func (suite *FsutilTestSuite) TestSanitizeFilename() {
	assert.Equal(suite.T(), "a_b_c_d", SanitizeFilename(`a/b:c?d`))
	assert.Equal(suite.T(), "plain name.m4a", SanitizeFilename("plain name.m4a"))
}

// Run the test suite
func TestFsutilTestSuite(t *testing.T) {
	suite.Run(t, new(FsutilTestSuite))
}
