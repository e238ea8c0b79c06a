package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// TestSuite for logger package
type LoggerTestSuite struct {
	suite.Suite
}

// SetupTest runs before each test
func (suite *LoggerTestSuite) SetupTest() {
	ResetLogger()
}

// TearDownTest runs after each test
func (suite *LoggerTestSuite) TearDownTest() {
	ResetLogger()
}

// TestGetLogger_Initialization tests logger initialization
func (suite *LoggerTestSuite) TestGetLogger_Initialization() {
	suite.T().Setenv("MELODIX_DEBUG", "")

	logger := GetLogger()

	assert.NotNil(suite.T(), logger)
	assert.Equal(suite.T(), logrus.InfoLevel, logger.GetLevel())

	formatter, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "2006-01-02 15:04:05", formatter.TimestampFormat)
}

// TestGetLogger_DebugEnv tests debug level via MELODIX_DEBUG
func (suite *LoggerTestSuite) TestGetLogger_DebugEnv() {
	suite.T().Setenv("MELODIX_DEBUG", "1")

	logger := GetLogger()

	assert.Equal(suite.T(), logrus.DebugLevel, logger.GetLevel())
}

// TestGetLogger_Singleton tests that GetLogger returns the same instance
func (suite *LoggerTestSuite) TestGetLogger_Singleton() {
	logger1 := GetLogger()
	logger2 := GetLogger()

	assert.Equal(suite.T(), logger1, logger2)
}

// TestWrapError_NilError tests wrapping nil error
func (suite *LoggerTestSuite) TestWrapError_NilError() {
	result := WrapError(nil, map[string]interface{}{"key": "value"})

	assert.Nil(suite.T(), result)
}

// TestWrapError_WithContext tests wrapping error with context
func (suite *LoggerTestSuite) TestWrapError_WithContext() {
	// Capture log output
	var buf bytes.Buffer
	testLogger := logrus.New()
	testLogger.SetOutput(&buf)
	testLogger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	testLogger.SetLevel(logrus.InfoLevel)

	// Temporarily replace the global logger
	log = testLogger
	defer ResetLogger()

	originalErr := assert.AnError
	context := map[string]interface{}{
		"track_id": "48213",
		"quality":  "high",
	}

	result := WrapError(originalErr, context)

	// Verify the returned error is the same
	assert.Equal(suite.T(), originalErr, result)

	// Verify log output contains expected fields
	logOutput := buf.String()
	assert.Contains(suite.T(), logOutput, "Operation failed")

	// Parse JSON log entry
	var logEntry map[string]interface{}
	lines := strings.Split(strings.TrimSpace(logOutput), "\n")
	lastLine := lines[len(lines)-1]

	err := json.Unmarshal([]byte(lastLine), &logEntry)
	assert.NoError(suite.T(), err)

	assert.Contains(suite.T(), logEntry, "error")
	assert.Equal(suite.T(), "48213", logEntry["track_id"])
	assert.Equal(suite.T(), "high", logEntry["quality"])
}

// Run the test suite
func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
