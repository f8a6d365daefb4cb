package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleOutputWrite(t *testing.T) {
	var sb strings.Builder
	out := NewConsoleOutput(false, WithColor(false), WithWriter(&sb))

	err := out.Write(LogEntry{
		Time:       time.Now().UnixNano(),
		Severity:   INFO,
		Message:    "generation complete",
		File:       "engine.go",
		Line:       42,
		RunID:      "run-1",
		Generation: 3,
		Fields:     map[string]interface{}{"best": 0.9},
	})

	assert.NoError(t, err)
	line := sb.String()
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "generation complete")
	assert.Contains(t, line, "[engine.go:42]")
	assert.Contains(t, line, "[run=run-1]")
	assert.Contains(t, line, "[gen=3]")
	assert.Contains(t, line, "best=0.9")
	assert.NotContains(t, line, "\033[")
}

func TestConsoleOutputSkipsAbsentRunFields(t *testing.T) {
	var sb strings.Builder
	out := NewConsoleOutput(false, WithColor(false), WithWriter(&sb))

	err := out.Write(LogEntry{
		Time:       time.Now().UnixNano(),
		Severity:   DEBUG,
		Message:    "starting up",
		File:       "engine.go",
		Line:       10,
		Generation: -1,
	})

	assert.NoError(t, err)
	line := sb.String()
	assert.NotContains(t, line, "[run=")
	assert.NotContains(t, line, "[gen=")
}

func TestConsoleOutputColor(t *testing.T) {
	var sb strings.Builder
	out := NewConsoleOutput(false, WithColor(true), WithWriter(&sb))

	err := out.Write(LogEntry{
		Time:       time.Now().UnixNano(),
		Severity:   ERROR,
		Message:    "reproduction failed",
		File:       "reproduction.go",
		Line:       7,
		Generation: -1,
	})

	assert.NoError(t, err)
	assert.Contains(t, sb.String(), "\033[31m")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "FATAL", FATAL.String())
	assert.Equal(t, WARN, ParseSeverity("WARN"))
	assert.Equal(t, INFO, ParseSeverity("bogus"))
}
