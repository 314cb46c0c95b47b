package service

import (
	"io"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/logger"
)

type MediaStorage interface {
	// Store re-encodes an image and returns its generated name. Any error means
	// nothing was kept.
	Store(data io.Reader, originalFilename string) (domain.StoredFilename, error)
	// Remove deletes a stored file, best effort.
	Remove(filename domain.StoredFilename)
}

// storeSlot hands one upload slot to the media store.
func storeSlot(media MediaStorage, slot domain.UploadSlot) domain.UploadOutcome {
	if slot.IsEmpty() {
		return domain.UploadOutcome{Status: domain.UploadAbsent}
	}
	filename, err := media.Store(slot.Data, slot.Filename)
	if err != nil {
		logger.Log.Info("upload skipped", "original_filename", slot.Filename, "reason", err)
		return domain.UploadOutcome{Status: domain.UploadRejected, Reason: err}
	}
	return domain.UploadOutcome{Status: domain.UploadStored, Filename: filename}
}

func storeSlots(media MediaStorage, slots []domain.UploadSlot) []domain.UploadOutcome {
	outcomes := make([]domain.UploadOutcome, 0, len(slots))
	for _, slot := range slots {
		outcomes = append(outcomes, storeSlot(media, slot))
	}
	return outcomes
}

// firstN caps uploads. Slots past the limit are dropped, never an error.
func firstN(slots []domain.UploadSlot, limit int) []domain.UploadSlot {
	if limit < 0 {
		limit = 0
	}
	if len(slots) > limit {
		return slots[:limit]
	}
	return slots
}

func removeAll(media MediaStorage, filenames []domain.StoredFilename) {
	for _, f := range filenames {
		media.Remove(f)
	}
}
