package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/IKUN2788/Lost-pet/shared/domain"
)

// ValidateAndParseMultipart caps the request body at maxSize and parses the
// multipart form. Exceeding the cap yields ErrPayloadTooLarge.
//
// Once MaxBytesReader hits the limit the server stops reading and closes the
// connection, so browsers may report a connection reset instead of the 413.
func ValidateAndParseMultipart(r *http.Request, w http.ResponseWriter, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || r.ContentLength > maxSize {
			return fmt.Errorf("%w: request exceeds %.0f MB", ErrPayloadTooLarge, FormatSizeMB(maxSize))
		}
		return fmt.Errorf("failed to parse multipart form: %w", err)
	}

	return nil
}

// UploadSlots opens the first limit files sent under field, in request order.
// Files past limit are never opened. The returned cleanup closes the opened
// files and must be called once the request is done.
func UploadSlots(form *multipart.Form, field string, limit int) ([]domain.UploadSlot, func(), error) {
	if form == nil || len(form.File[field]) == 0 || limit <= 0 {
		return nil, func() {}, nil
	}

	headers := form.File[field]
	if len(headers) > limit {
		headers = headers[:limit]
	}
	slots := make([]domain.UploadSlot, 0, len(headers))
	var opened []io.Closer
	cleanup := func() {
		for _, c := range opened {
			c.Close()
		}
	}

	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
		}
		opened = append(opened, file)
		slots = append(slots, domain.UploadSlot{Filename: fh.Filename, Data: file})
	}

	return slots, cleanup, nil
}

// FormatSizeMB converts bytes to megabytes for user-friendly error messages.
func FormatSizeMB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}
