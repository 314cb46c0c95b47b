package router

import (
	"net/http"
	"time"

	"github.com/IKUN2788/Lost-pet/backend/internal/setup"
	mw "github.com/IKUN2788/Lost-pet/shared/middleware"
	"github.com/IKUN2788/Lost-pet/shared/middleware/metrics"
	rl "github.com/IKUN2788/Lost-pet/shared/middleware/ratelimiter"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New wires every route of the JSON API.
// Rate limiters attached with Use count requests for all routes of that group combined.
// Per-IP limits key on the peer address; X-Forwarded-For and X-Real-IP are
// never consulted.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(mw.RateLimit(rl.New(1.0/10, 3, time.Hour), mw.GetIP)).Post("/register", h.Register)
			r.With(mw.RateLimit(rl.OncePerSecond(), mw.GetIP)).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Get("/posts", h.ListPosts)
			r.Get("/posts/{post}", h.GetPost)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Use(mw.RateLimit(rl.Rps10(), mw.GetUserIDFromContext))

			r.With(mw.RateLimit(rl.New(1.0/30, 2, time.Hour), mw.GetUserIDFromContext)).Post("/posts", h.CreatePost)
			r.Delete("/posts/{post}", h.DeletePost)
			r.With(mw.RateLimit(rl.OncePerSecond(), mw.GetUserIDFromContext)).Post("/posts/{post}/comments", h.CreateComment)
			r.Delete("/comments/{comment}", h.DeleteComment)

			r.Get("/me", h.GetProfile)
			r.Put("/me", h.UpdateProfile)
			r.Get("/me/posts", h.MyPosts)
		})
	})

	return r
}
