package handler

import (
	"net/http"

	"github.com/IKUN2788/Lost-pet/shared/api"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/utils"
	"github.com/IKUN2788/Lost-pet/shared/validation"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := currentUserId(r)
	if !ok {
		utils.WriteErrorAndStatusCode(w, errNoUser)
		return
	}

	user, err := h.profile.Get(userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewUserResponse(user))
}

// UpdateProfile changes only the fields present in the form. An "avatar" file
// replaces the profile picture.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := currentUserId(r)
	if !ok {
		writeFailure(w, errNoUser)
		return
	}
	if err := h.parseMultipart(w, r); err != nil {
		writeFailure(w, err)
		return
	}

	avatars, cleanup, err := validation.UploadSlots(r.MultipartForm, "avatar", 1)
	if err != nil {
		writeFailure(w, err)
		return
	}
	defer cleanup()

	update := domain.ProfileUpdate{
		RealName: optionalFormValue(r, "real_name"),
		Phone:    optionalFormValue(r, "phone"),
		Location: optionalFormValue(r, "location"),
		Bio:      optionalFormValue(r, "bio"),
	}
	if len(avatars) > 0 {
		update.Avatar = &avatars[0]
	}

	if err := h.profile.Update(userId, update); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Result{Success: true})
}
