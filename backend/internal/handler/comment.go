package handler

import (
	"net/http"

	"github.com/IKUN2788/Lost-pet/shared/api"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/validation"
)

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userId, ok := currentUserId(r)
	if !ok {
		writeFailure(w, errNoUser)
		return
	}
	postId, err := parseIdParam(r, "post")
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := h.parseMultipart(w, r); err != nil {
		writeFailure(w, err)
		return
	}

	images, cleanup, err := validation.UploadSlots(r.MultipartForm, "comment_images", h.cfg.Public.MaxCommentImages)
	if err != nil {
		writeFailure(w, err)
		return
	}
	defer cleanup()

	id, err := h.comments.Create(domain.CommentCreationData{
		Content: r.FormValue("content"),
		OwnerId: userId,
		PostId:  postId,
		Images:  images,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateCommentResponse{
		Result:    api.Result{Success: true},
		CommentId: id,
	})
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userId, ok := currentUserId(r)
	if !ok {
		writeFailure(w, errNoUser)
		return
	}
	id, err := parseIdParam(r, "comment")
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.comments.Delete(id, userId); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Result{Success: true})
}
