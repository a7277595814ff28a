package task

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOnceRemovesOnlyStaleUploads(t *testing.T) {
	stale, err := os.CreateTemp("", "intake-upload-*.csv")
	require.NoError(t, err)
	stale.Close()
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale.Name(), old, old))

	fresh, err := os.CreateTemp("", "intake-upload-*.csv")
	require.NoError(t, err)
	fresh.Close()
	defer os.Remove(fresh.Name())

	NewCleanupTask().SweepOnce()

	assert.NoFileExists(t, stale.Name())
	assert.FileExists(t, fresh.Name())
}

func TestCleanupTaskStartStop(t *testing.T) {
	task := NewCleanupTask()
	require.NoError(t, task.Start())
	task.Stop()
}
