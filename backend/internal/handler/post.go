package handler

import (
	"net/http"

	"github.com/IKUN2788/Lost-pet/backend/internal/service"
	"github.com/IKUN2788/Lost-pet/shared/api"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/utils"
	"github.com/IKUN2788/Lost-pet/shared/validation"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userId, ok := currentUserId(r)
	if !ok {
		writeFailure(w, errNoUser)
		return
	}
	if err := h.parseMultipart(w, r); err != nil {
		writeFailure(w, err)
		return
	}

	images, cleanup, err := validation.UploadSlots(r.MultipartForm, "images", h.cfg.Public.MaxPostImages)
	if err != nil {
		writeFailure(w, err)
		return
	}
	defer cleanup()

	id, err := h.posts.Create(domain.PostCreationData{
		PostFields: domain.PostFields{
			Title:        r.FormValue("title"),
			Description:  r.FormValue("description"),
			PetType:      r.FormValue("pet_type"),
			LostLocation: r.FormValue("lost_location"),
			ContactInfo:  r.FormValue("contact_info"),
		},
		OwnerId: userId,
		Images:  images,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreatePostResponse{PostId: id})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.NewPostResponse(post)
	if viewer, ok := currentUserId(r); ok {
		markDeletable(&resp, post, viewer)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postsResponse(posts))
}

func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) {
	userId, ok := currentUserId(r)
	if !ok {
		utils.WriteErrorAndStatusCode(w, errNoUser)
		return
	}

	posts, err := h.posts.ListByOwner(userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postsResponse(posts))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userId, ok := currentUserId(r)
	if !ok {
		writeFailure(w, errNoUser)
		return
	}
	id, err := parseIdParam(r, "post")
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.posts.Delete(id, userId); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Result{Success: true, Message: "Post deleted"})
}

// markDeletable flags what the viewer may delete on the post page.
func markDeletable(resp *api.PostResponse, post domain.Post, viewer domain.UserId) {
	resp.CanDelete = service.CanDeletePost(viewer, post.PostMetadata)
	for i, c := range post.Comments {
		resp.Comments[i].CanDelete = service.CanDeleteComment(viewer, c)
	}
}

func postsResponse(posts []domain.Post) api.PostsResponse {
	resp := api.PostsResponse{Posts: make([]api.PostResponse, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, api.NewPostResponse(p))
	}
	return resp
}
