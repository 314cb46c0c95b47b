package domain

import (
	"fmt"
	"io"
)

// UploadSlot is one file field of an inbound request. Data may be nil when the
// client sent an empty file input.
type UploadSlot struct {
	Filename string
	Data     io.Reader
}

func (s UploadSlot) IsEmpty() bool {
	return s.Data == nil || s.Filename == ""
}

type UploadStatus int

const (
	UploadAbsent UploadStatus = iota
	UploadRejected
	UploadStored
)

func (s UploadStatus) String() string {
	switch s {
	case UploadAbsent:
		return "absent"
	case UploadRejected:
		return "rejected"
	case UploadStored:
		return "stored"
	default:
		return fmt.Sprintf("UploadStatus(%d)", int(s))
	}
}

// UploadOutcome is the result of handing one slot to the media store.
type UploadOutcome struct {
	Status   UploadStatus
	Filename StoredFilename // set when Status == UploadStored
	Reason   error          // set when Status == UploadRejected
}

func StoredFilenames(outcomes []UploadOutcome) []StoredFilename {
	var names []StoredFilename
	for _, o := range outcomes {
		if o.Status == UploadStored {
			names = append(names, o.Filename)
		}
	}
	return names
}
