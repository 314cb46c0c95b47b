package handler

import (
	"context"

	"github.com/IKUN2788/Lost-pet/backend/internal/service"
	"github.com/IKUN2788/Lost-pet/shared/config"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	posts    service.PostService
	comments service.CommentService
	profile  service.ProfileService
	health   HealthChecker
	cfg      *config.Config
}

func New(
	auth service.AuthService,
	posts service.PostService,
	comments service.CommentService,
	profile service.ProfileService,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{
		auth:     auth,
		posts:    posts,
		comments: comments,
		profile:  profile,
		health:   health,
		cfg:      cfg,
	}
}
