package setup

import (
	"github.com/IKUN2788/Lost-pet/backend/internal/handler"
	"github.com/IKUN2788/Lost-pet/backend/internal/service"
	"github.com/IKUN2788/Lost-pet/backend/internal/storage/fs"
	"github.com/IKUN2788/Lost-pet/backend/internal/storage/pg"
	"github.com/IKUN2788/Lost-pet/shared/config"
	"github.com/IKUN2788/Lost-pet/shared/jwt"
	mw "github.com/IKUN2788/Lost-pet/shared/middleware"
)

// Dependencies holds everything main and the router need.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Media          *fs.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
	MediaGC        *service.MediaGarbageCollector
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(&cfg.Public)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService)
	posts := service.NewPost(storage, media, &cfg.Public)
	comments := service.NewComment(storage, media, &cfg.Public)
	profile := service.NewProfile(storage, media)
	gc := service.NewMediaGarbageCollector(storage, media, cfg.Public.MediaGCSafetyThreshold)

	h := handler.New(auth, posts, comments, profile, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Media:          media,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService),
		Jwt:            jwtService,
		MediaGC:        gc,
	}, nil
}
