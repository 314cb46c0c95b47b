package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IKUN2788/Lost-pet/shared/config"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	mw "github.com/IKUN2788/Lost-pet/shared/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	MockRegister func(username domain.Username, email domain.Email, password domain.Password) (domain.UserId, error)
	MockLogin    func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Register(username domain.Username, email domain.Email, password domain.Password) (domain.UserId, error) {
	if m.MockRegister != nil {
		return m.MockRegister(username, email, password)
	}
	return 1, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "token", nil
}

type MockPostService struct {
	MockCreate      func(data domain.PostCreationData) (domain.PostId, error)
	MockGet         func(id domain.PostId) (domain.Post, error)
	MockList        func() ([]domain.Post, error)
	MockListByOwner func(ownerId domain.UserId) ([]domain.Post, error)
	MockDelete      func(id domain.PostId, requester domain.UserId) error
}

func (m *MockPostService) Create(data domain.PostCreationData) (domain.PostId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockPostService) Get(id domain.PostId) (domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) List() ([]domain.Post, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return nil, nil
}

func (m *MockPostService) ListByOwner(ownerId domain.UserId) ([]domain.Post, error) {
	if m.MockListByOwner != nil {
		return m.MockListByOwner(ownerId)
	}
	return nil, nil
}

func (m *MockPostService) Delete(id domain.PostId, requester domain.UserId) error {
	if m.MockDelete != nil {
		return m.MockDelete(id, requester)
	}
	return nil
}

type MockCommentService struct {
	MockCreate func(data domain.CommentCreationData) (domain.CommentId, error)
	MockDelete func(id domain.CommentId, requester domain.UserId) error
}

func (m *MockCommentService) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockCommentService) Delete(id domain.CommentId, requester domain.UserId) error {
	if m.MockDelete != nil {
		return m.MockDelete(id, requester)
	}
	return nil
}

type MockProfileService struct {
	MockGet    func(id domain.UserId) (domain.User, error)
	MockUpdate func(id domain.UserId, update domain.ProfileUpdate) error
}

func (m *MockProfileService) Get(id domain.UserId) (domain.User, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.User{Id: id}, nil
}

func (m *MockProfileService) Update(id domain.UserId, update domain.ProfileUpdate) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(id, update)
	}
	return nil
}

type MockHealth struct {
	err error
}

func (m *MockHealth) Ping(ctx context.Context) error {
	return m.err
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Default()}
}

// setupTestRouter mounts the handlers the way the API router does, without
// the auth middleware: tests put the user in the context directly.
func setupTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/auth/register", h.Register)
	r.Post("/v1/auth/login", h.Login)
	r.Post("/v1/auth/logout", h.Logout)
	r.Get("/v1/posts", h.ListPosts)
	r.Post("/v1/posts", h.CreatePost)
	r.Get("/v1/posts/{post}", h.GetPost)
	r.Delete("/v1/posts/{post}", h.DeletePost)
	r.Post("/v1/posts/{post}/comments", h.CreateComment)
	r.Delete("/v1/comments/{comment}", h.DeleteComment)
	r.Get("/v1/me", h.GetProfile)
	r.Put("/v1/me", h.UpdateProfile)
	r.Get("/v1/me/posts", h.MyPosts)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	return r
}

func withUser(req *http.Request, id domain.UserId) *http.Request {
	ctx := context.WithValue(req.Context(), mw.UserClaimsKey, &domain.User{Id: id, Username: "tester"})
	return req.WithContext(ctx)
}

type formFile struct {
	field, name string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mpw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mpw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mpw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mpw.Close())
	return &buf, mpw.FormDataContentType()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
