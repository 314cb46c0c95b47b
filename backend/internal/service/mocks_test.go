package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/IKUN2788/Lost-pet/shared/config"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	internal_errors "github.com/IKUN2788/Lost-pet/shared/errors"
)

func testConfig() *config.Public {
	cfg := config.Default()
	return &cfg
}

// --- Media ---

type MockMediaStorage struct {
	mu          sync.Mutex
	storeFunc   func(data io.Reader, originalFilename string) (domain.StoredFilename, error)
	storeCalls  []string
	removeCalls []domain.StoredFilename
	counter     int
}

var errMockRejected = errors.New("unsupported file extension")

// Store accepts any image-like extension and rejects everything else.
func (m *MockMediaStorage) Store(data io.Reader, originalFilename string) (domain.StoredFilename, error) {
	m.mu.Lock()
	m.storeCalls = append(m.storeCalls, originalFilename)
	m.counter++
	n := m.counter
	m.mu.Unlock()

	if m.storeFunc != nil {
		return m.storeFunc(data, originalFilename)
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif"} {
		if strings.HasSuffix(originalFilename, ext) {
			return fmt.Sprintf("stored-%d%s", n, ext), nil
		}
	}
	return "", errMockRejected
}

func (m *MockMediaStorage) Remove(filename domain.StoredFilename) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeCalls = append(m.removeCalls, filename)
}

func (m *MockMediaStorage) StoreCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.storeCalls...)
}

func (m *MockMediaStorage) RemoveCalls() []domain.StoredFilename {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.StoredFilename(nil), m.removeCalls...)
}

// --- Posts ---

type createPostCall struct {
	Fields    domain.PostFields
	OwnerId   domain.UserId
	Filenames []domain.StoredFilename
}

type MockPostStorage struct {
	mu                  sync.Mutex
	createPostFunc      func(fields domain.PostFields, ownerId domain.UserId, filenames []domain.StoredFilename) (domain.PostId, error)
	getPostFunc         func(id domain.PostId) (domain.Post, error)
	getPostMetadataFunc func(id domain.PostId) (domain.PostMetadata, error)
	listPostsFunc       func() ([]domain.Post, error)
	listPostsByUserFunc func(userId domain.UserId) ([]domain.Post, error)
	deletePostFunc      func(id domain.PostId) ([]domain.StoredFilename, error)

	createPostCalls []createPostCall
	deletePostCalls []domain.PostId
}

func (m *MockPostStorage) CreatePost(fields domain.PostFields, ownerId domain.UserId, filenames []domain.StoredFilename) (domain.PostId, error) {
	m.mu.Lock()
	m.createPostCalls = append(m.createPostCalls, createPostCall{fields, ownerId, filenames})
	m.mu.Unlock()

	if m.createPostFunc != nil {
		return m.createPostFunc(fields, ownerId, filenames)
	}
	return 1, nil
}

func (m *MockPostStorage) GetPost(id domain.PostId) (domain.Post, error) {
	if m.getPostFunc != nil {
		return m.getPostFunc(id)
	}
	return domain.Post{PostMetadata: domain.PostMetadata{Id: id}}, nil
}

func (m *MockPostStorage) GetPostMetadata(id domain.PostId) (domain.PostMetadata, error) {
	if m.getPostMetadataFunc != nil {
		return m.getPostMetadataFunc(id)
	}
	return domain.PostMetadata{Id: id}, nil
}

func (m *MockPostStorage) ListPosts() ([]domain.Post, error) {
	if m.listPostsFunc != nil {
		return m.listPostsFunc()
	}
	return nil, nil
}

func (m *MockPostStorage) ListPostsByUser(userId domain.UserId) ([]domain.Post, error) {
	if m.listPostsByUserFunc != nil {
		return m.listPostsByUserFunc(userId)
	}
	return nil, nil
}

func (m *MockPostStorage) DeletePost(id domain.PostId) ([]domain.StoredFilename, error) {
	m.mu.Lock()
	m.deletePostCalls = append(m.deletePostCalls, id)
	m.mu.Unlock()

	if m.deletePostFunc != nil {
		return m.deletePostFunc(id)
	}
	return nil, nil
}

// --- Comments ---

type createCommentCall struct {
	Content   string
	OwnerId   domain.UserId
	PostId    domain.PostId
	Filenames []domain.StoredFilename
}

type MockCommentStorage struct {
	mu                sync.Mutex
	createCommentFunc func(content string, ownerId domain.UserId, postId domain.PostId, filenames []domain.StoredFilename) (domain.CommentId, error)
	getCommentFunc    func(id domain.CommentId) (domain.Comment, error)
	deleteCommentFunc func(id domain.CommentId) ([]domain.StoredFilename, error)

	createCommentCalls []createCommentCall
	deleteCommentCalls []domain.CommentId
}

func (m *MockCommentStorage) CreateComment(content string, ownerId domain.UserId, postId domain.PostId, filenames []domain.StoredFilename) (domain.CommentId, error) {
	m.mu.Lock()
	m.createCommentCalls = append(m.createCommentCalls, createCommentCall{content, ownerId, postId, filenames})
	m.mu.Unlock()

	if m.createCommentFunc != nil {
		return m.createCommentFunc(content, ownerId, postId, filenames)
	}
	return 1, nil
}

func (m *MockCommentStorage) GetComment(id domain.CommentId) (domain.Comment, error) {
	if m.getCommentFunc != nil {
		return m.getCommentFunc(id)
	}
	return domain.Comment{Id: id}, nil
}

func (m *MockCommentStorage) DeleteComment(id domain.CommentId) ([]domain.StoredFilename, error) {
	m.mu.Lock()
	m.deleteCommentCalls = append(m.deleteCommentCalls, id)
	m.mu.Unlock()

	if m.deleteCommentFunc != nil {
		return m.deleteCommentFunc(id)
	}
	return nil, nil
}

// --- Users ---

type MockUserStorage struct {
	mu                    sync.Mutex
	createUserFunc        func(data domain.UserCreationData) (domain.UserId, error)
	getUserFunc           func(id domain.UserId) (domain.User, error)
	getUserByUsernameFunc func(username domain.Username) (domain.User, error)
	getUserByEmailFunc    func(email domain.Email) (domain.User, error)
	updateProfileFunc     func(id domain.UserId, fields domain.ProfileFields) (*domain.StoredFilename, error)

	createUserCalls    []domain.UserCreationData
	updateProfileCalls []domain.ProfileFields
}

func (m *MockUserStorage) CreateUser(data domain.UserCreationData) (domain.UserId, error) {
	m.mu.Lock()
	m.createUserCalls = append(m.createUserCalls, data)
	m.mu.Unlock()

	if m.createUserFunc != nil {
		return m.createUserFunc(data)
	}
	return 1, nil
}

func (m *MockUserStorage) GetUser(id domain.UserId) (domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(id)
	}
	return domain.User{Id: id}, nil
}

func (m *MockUserStorage) GetUserByUsername(username domain.Username) (domain.User, error) {
	if m.getUserByUsernameFunc != nil {
		return m.getUserByUsernameFunc(username)
	}
	return domain.User{}, notFound()
}

func (m *MockUserStorage) GetUserByEmail(email domain.Email) (domain.User, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(email)
	}
	return domain.User{}, notFound()
}

func (m *MockUserStorage) UpdateProfile(id domain.UserId, fields domain.ProfileFields) (*domain.StoredFilename, error) {
	m.mu.Lock()
	m.updateProfileCalls = append(m.updateProfileCalls, fields)
	m.mu.Unlock()

	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(id, fields)
	}
	return nil, nil
}

type MockJwt struct {
	newTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.newTokenFunc != nil {
		return m.newTokenFunc(user)
	}
	return "token", nil
}

func notFound() error {
	return internal_errors.NotFound("not found")
}
