package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerVerbosityGating(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(VerbosityNormal, &buf)

	logger.Progress("should not appear")
	assert.Empty(t, buf.String())

	logger.Warning("always appears")
	assert.Contains(t, buf.String(), "Warning: always appears")
}

func TestLoggerVerboseShowsProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(VerbosityVerbose, &buf)
	logger.Progress("parsing %s", "background.js")
	assert.True(t, strings.Contains(buf.String(), "parsing background.js"))
}

func TestLoggerDebugOnlyAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	verbose := NewLoggerWithWriter(VerbosityVerbose, &buf)
	verbose.Debug("hidden")
	assert.Empty(t, buf.String())

	var buf2 bytes.Buffer
	debug := NewLoggerWithWriter(VerbosityDebug, &buf2)
	debug.Debug("shown")
	assert.Contains(t, buf2.String(), "shown")
}

func TestLoggerTiming(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(VerbosityNormal, &buf)
	done := logger.StartTiming("parse")
	done()
	_, ok := logger.GetAllTimings()["parse"]
	assert.True(t, ok)
}
