package service

import (
	"context"
	"sync"
	"time"

	"github.com/IKUN2788/Lost-pet/shared/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var gcFilesDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "media_gc_files_deleted_total",
	Help: "Unreferenced media files removed by the garbage collector",
})

// MediaGarbageCollector removes files in the media directory that no image
// row or avatar references. These are left behind when a file was stored but
// the row insert never committed.
type MediaGarbageCollector struct {
	storage         GCStorage
	mediaStorage    GCMediaStorage
	safetyThreshold time.Duration
	now             func() time.Time

	mu        sync.Mutex
	lastStats CleanupStats
}

type CleanupStats struct {
	RunAt         time.Time
	FilesScanned  int
	OrphanedFiles int
	FilesDeleted  int
	Duration      time.Duration
	Errors        []string
}

type GCStorage interface {
	// GetAllFilePaths lists every stored filename referenced by the database.
	GetAllFilePaths() ([]string, error)
}

type GCMediaStorage interface {
	WalkFiles() ([]string, error)
	GetFileModTime(filename string) (time.Time, error)
	DeleteFile(filename string) error
}

// NewMediaGarbageCollector creates a collector. Unreferenced files younger
// than safetyThreshold are kept: their rows may still be in flight.
func NewMediaGarbageCollector(storage GCStorage, mediaStorage GCMediaStorage, safetyThreshold time.Duration) *MediaGarbageCollector {
	return &MediaGarbageCollector{
		storage:         storage,
		mediaStorage:    mediaStorage,
		safetyThreshold: safetyThreshold,
		now:             time.Now,
	}
}

// StartBackgroundCleanup runs RunCleanup every interval until ctx is done.
func (gc *MediaGarbageCollector) StartBackgroundCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("media gc started", "interval", interval, "safety_threshold", gc.safetyThreshold)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.RunCleanup(); err != nil {
					logger.Log.Error("media gc failed", "error", err)
					continue
				}
				stats := gc.GetLastCleanupStats()
				logger.Log.Info("media gc completed",
					"scanned", stats.FilesScanned,
					"orphans", stats.OrphanedFiles,
					"deleted", stats.FilesDeleted,
					"duration", stats.Duration,
					"errors", len(stats.Errors))
			case <-ctx.Done():
				logger.Log.Info("media gc stopped")
				return
			}
		}
	}()
}

// RunCleanup performs one collection pass.
func (gc *MediaGarbageCollector) RunCleanup() error {
	start := gc.now()
	stats := CleanupStats{RunAt: start, Errors: []string{}}

	referenced, err := gc.storage.GetAllFilePaths()
	if err != nil {
		return err
	}
	keep := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		keep[name] = struct{}{}
	}

	files, err := gc.mediaStorage.WalkFiles()
	if err != nil {
		return err
	}
	stats.FilesScanned = len(files)

	for _, name := range files {
		if _, ok := keep[name]; ok {
			continue
		}

		modTime, err := gc.mediaStorage.GetFileModTime(name)
		if err != nil {
			stats.Errors = append(stats.Errors, "stat "+name+": "+err.Error())
			continue
		}
		if gc.now().Sub(modTime) < gc.safetyThreshold {
			continue
		}

		stats.OrphanedFiles++
		if err := gc.mediaStorage.DeleteFile(name); err != nil {
			stats.Errors = append(stats.Errors, "delete "+name+": "+err.Error())
			continue
		}
		stats.FilesDeleted++
		gcFilesDeleted.Inc()
	}

	stats.Duration = gc.now().Sub(start)

	gc.mu.Lock()
	gc.lastStats = stats
	gc.mu.Unlock()
	return nil
}

func (gc *MediaGarbageCollector) GetLastCleanupStats() CleanupStats {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.lastStats
}
