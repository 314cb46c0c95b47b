package fs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	imagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_images_stored_total",
		Help: "Uploaded images re-encoded and written to the media directory",
	})

	imagesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_images_rejected_total",
		Help: "Uploaded images skipped, by reason",
	}, []string{"reason"})

	filesRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_files_removed_total",
		Help: "Best-effort media removals, by result",
	}, []string{"result"})
)
