package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerWritesRunLog(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(logDir, "info", "resize")
	require.NoError(t, err)

	fl.LogDebug("hidden detail")
	fl.LogInfo("processed 4 files")
	fl.LogError("decode failed")
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.Path())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "=== filekit resize ===")
	assert.Contains(t, content, "Run ID: "+fl.RunID())
	assert.Contains(t, content, "[INFO] processed 4 files")
	assert.Contains(t, content, "[ERROR] decode failed")
	assert.NotContains(t, content, "hidden detail")

	_, err = uuid.Parse(fl.RunID())
	assert.NoError(t, err)
}

func TestFileLoggerLatestSymlink(t *testing.T) {
	logDir := t.TempDir()

	fl, err := NewFileLogger(logDir, "info", "lsreport")
	require.NoError(t, err)
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.Path()), target)
}

func TestFileLoggerCloseTwice(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info", "listdiff")
	require.NoError(t, err)

	require.NoError(t, fl.Close())
	assert.NoError(t, fl.Close())
	assert.NotPanics(t, func() { fl.LogInfo("after close") })
}
