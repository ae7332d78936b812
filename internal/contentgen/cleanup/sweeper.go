// Package cleanup prunes old generated documents from the output directory.
package cleanup

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper deletes generated documents older than the retention window.
type Sweeper struct {
	outputDir string
	retention time.Duration
	cron      *cron.Cron
}

// NewSweeper returns a sweeper for outputDir. A retention of zero or less
// disables sweeping.
func NewSweeper(outputDir string, retentionDays int) *Sweeper {
	return &Sweeper{
		outputDir: outputDir,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start schedules a nightly sweep at 02:00.
func (s *Sweeper) Start() {
	if s.retention <= 0 {
		log.Println("[cleanup] retention disabled, sweeper not started")
		return
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc("0 2 * * *", func() {
		removed, err := s.Sweep(time.Now())
		if err != nil {
			log.Printf("[cleanup] sweep failed: %v", err)
			return
		}
		log.Printf("[cleanup] sweep removed %d file(s)", removed)
	})
	if err != nil {
		log.Printf("[cleanup] failed to schedule sweep: %v", err)
		return
	}

	log.Printf("[cleanup] sweeper started retention=%s dir=%s", s.retention, s.outputDir)
	s.cron.Start()
}

// Stop halts the schedule; a running sweep finishes first.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep removes generated documents whose modification time is older than
// the retention window, and reports how many were deleted. Only .pdf and
// .pptx files are touched.
func (s *Sweeper) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-s.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".pdf") && !strings.HasSuffix(name, ".pptx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.outputDir, name)); err != nil {
			log.Printf("[cleanup] failed to remove %s: %v", name, err)
			continue
		}
		removed++
	}
	return removed, nil
}
