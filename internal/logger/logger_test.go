package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warn", WARN},
		{"WARNING", WARN},
		{"error", ERROR},
		{"", INFO},
		{"bogus", INFO},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLogLevel(tc.in))
		})
	}
}

func TestNewLogger_FileSink(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "server.log")

	l, err := NewLogger(Config{Level: DEBUG, OutputFile: logFile, MaxSize: 1024})
	require.NoError(t, err)
	defer l.Close()

	l.log(INFO, "started", map[string]interface{}{"type": "postgres"})

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
	assert.Contains(t, string(data), "type=postgres")
}

func TestRotateLogIfNeeded(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "server.log")
	require.NoError(t, os.WriteFile(logFile, make([]byte, 2048), 0644))

	require.NoError(t, rotateLogIfNeeded(logFile, 1024))

	_, err := os.Stat(logFile)
	assert.True(t, os.IsNotExist(err), "oversized file should have been renamed away")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "rotated backup remains")
}
