package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IKUN2788/Lost-pet/shared/api"
	internal_errors "github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/IKUN2788/Lost-pet/shared/logger"
	mw "github.com/IKUN2788/Lost-pet/shared/middleware"
	"github.com/IKUN2788/Lost-pet/shared/utils"
	"github.com/IKUN2788/Lost-pet/shared/validation"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// writeFailure renders err as a {success:false} envelope with the status of
// its kind. Unexpected errors are logged and reported as 500.
func writeFailure(w http.ResponseWriter, err error) {
	status := utils.StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.Error("internal error", "error", err)
		message = "Internal server error"
	}
	writeJSON(w, status, api.Result{Success: false, Message: message})
}

// parseIdParam reads a positive integer path parameter.
func parseIdParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.Validation(fmt.Sprintf("Invalid %s id", name))
	}
	return id, nil
}

// parseMultipart applies the request size cap and parses the form.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	maxSize := h.cfg.Public.MaxRequestBytes
	if err := validation.ValidateAndParseMultipart(r, w, maxSize); err != nil {
		if errors.Is(err, validation.ErrPayloadTooLarge) {
			return &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("Request is too large. The limit is %.0f MB", validation.FormatSizeMB(maxSize)),
				StatusCode: http.StatusRequestEntityTooLarge,
				Kind:       internal_errors.ErrValidation,
			}
		}
		logger.Log.Debug("bad multipart request", "error", err)
		return internal_errors.Validation("Invalid multipart form")
	}
	return nil
}

// optionalFormValue returns nil when the field was not sent at all.
func optionalFormValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func currentUserId(r *http.Request) (int64, bool) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		return 0, false
	}
	return user.Id, true
}

var errNoUser = &internal_errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized, Kind: internal_errors.ErrUnauthorized}
