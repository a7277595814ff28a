package task

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// ==================== CleanupTask ====================

// CleanupTask periodically removes staged CSV uploads that were left
// behind, e.g. by a crash between staging and job completion.
type CleanupTask struct {
	cron   *cron.Cron
	maxAge time.Duration
}

func NewCleanupTask() *CleanupTask {
	return &CleanupTask{
		cron:   cron.New(cron.WithSeconds()),
		maxAge: 24 * time.Hour,
	}
}

// Start schedules the hourly sweep.
func (t *CleanupTask) Start() error {
	_, err := t.cron.AddFunc("0 0 * * * *", func() {
		t.SweepOnce()
	})
	if err != nil {
		return err
	}
	t.cron.Start()
	log.Println("[CleanupTask] started, sweeping staged uploads hourly")
	return nil
}

// Stop halts the schedule. Running sweeps finish.
func (t *CleanupTask) Stop() {
	t.cron.Stop()
	log.Println("[CleanupTask] stopped")
}

// SweepOnce removes staged upload files older than maxAge.
func (t *CleanupTask) SweepOnce() {
	pattern := filepath.Join(os.TempDir(), "intake-upload-*.csv")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		log.Printf("[CleanupTask] glob: %v", err)
		return
	}

	cutoff := time.Now().Add(-t.maxAge)
	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Printf("[CleanupTask] remove %s: %v", path, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("[CleanupTask] removed %d stale upload(s)", removed)
	}
}
