package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	internal_errors "github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPostFields() domain.PostFields {
	return domain.PostFields{
		Title:        "Lost tabby cat",
		Description:  "Orange tabby, answers to Biscuit",
		PetType:      "cat",
		LostLocation: "Elm street park",
		ContactInfo:  "555-0100",
	}
}

func slot(name string) domain.UploadSlot {
	return domain.UploadSlot{Filename: name, Data: strings.NewReader("image bytes")}
}

func TestPostCreate(t *testing.T) {
	t.Run("stores images and creates rows in one call", func(t *testing.T) {
		storage := &MockPostStorage{createPostFunc: func(domain.PostFields, domain.UserId, []domain.StoredFilename) (domain.PostId, error) {
			return 42, nil
		}}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		id, err := service.Create(domain.PostCreationData{
			PostFields: validPostFields(),
			OwnerId:    7,
			Images:     []domain.UploadSlot{slot("a.png"), slot("b.jpg")},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PostId(42), id)
		require.Len(t, storage.createPostCalls, 1)
		call := storage.createPostCalls[0]
		assert.Equal(t, domain.UserId(7), call.OwnerId)
		assert.Equal(t, []domain.StoredFilename{"stored-1.png", "stored-2.jpg"}, call.Filenames)
		assert.Empty(t, media.RemoveCalls())
	})

	t.Run("caps uploads at nine images", func(t *testing.T) {
		storage := &MockPostStorage{}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		images := make([]domain.UploadSlot, 12)
		for i := range images {
			images[i] = slot(fmt.Sprintf("photo%d.jpg", i))
		}

		_, err := service.Create(domain.PostCreationData{PostFields: validPostFields(), OwnerId: 1, Images: images})

		require.NoError(t, err)
		assert.Len(t, media.StoreCalls(), 9)
		require.Len(t, storage.createPostCalls, 1)
		assert.Len(t, storage.createPostCalls[0].Filenames, 9)
	})

	t.Run("skips rejected uploads without failing", func(t *testing.T) {
		storage := &MockPostStorage{}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		_, err := service.Create(domain.PostCreationData{
			PostFields: validPostFields(),
			OwnerId:    1,
			Images:     []domain.UploadSlot{slot("notes.txt")},
		})

		require.NoError(t, err)
		require.Len(t, storage.createPostCalls, 1)
		assert.Empty(t, storage.createPostCalls[0].Filenames)
	})

	t.Run("drops slots without a filename before storing", func(t *testing.T) {
		storage := &MockPostStorage{}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		_, err := service.Create(domain.PostCreationData{
			PostFields: validPostFields(),
			OwnerId:    1,
			Images:     []domain.UploadSlot{{Filename: "", Data: strings.NewReader("x")}, slot("a.gif")},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.gif"}, media.StoreCalls())
	})

	t.Run("requires every field after trimming", func(t *testing.T) {
		tests := []struct {
			field  string
			mutate func(f *domain.PostFields)
		}{
			{"title", func(f *domain.PostFields) { f.Title = "   " }},
			{"description", func(f *domain.PostFields) { f.Description = "" }},
			{"pet_type", func(f *domain.PostFields) { f.PetType = "\t" }},
			{"lost_location", func(f *domain.PostFields) { f.LostLocation = " \n " }},
			{"contact_info", func(f *domain.PostFields) { f.ContactInfo = "" }},
		}
		for _, tt := range tests {
			t.Run(tt.field, func(t *testing.T) {
				storage := &MockPostStorage{}
				media := &MockMediaStorage{}
				service := NewPost(storage, media, testConfig())
				fields := validPostFields()
				tt.mutate(&fields)

				_, err := service.Create(domain.PostCreationData{PostFields: fields, OwnerId: 1, Images: []domain.UploadSlot{slot("a.png")}})

				require.Error(t, err)
				assert.ErrorIs(t, err, internal_errors.ErrValidation)
				assert.Contains(t, err.Error(), tt.field)
				assert.Empty(t, storage.createPostCalls)
				assert.Empty(t, media.StoreCalls(), "nothing is stored for an invalid post")
			})
		}
	})

	t.Run("stores text as typed apart from trimming", func(t *testing.T) {
		storage := &MockPostStorage{}
		service := NewPost(storage, &MockMediaStorage{}, testConfig())
		fields := validPostFields()
		fields.Title = "  Lost dog <3 "
		fields.ContactInfo = "Call Anna <anna@example.com>"
		fields.LostLocation = "a<b and c>d"

		_, err := service.Create(domain.PostCreationData{PostFields: fields, OwnerId: 1})

		require.NoError(t, err)
		stored := storage.createPostCalls[0].Fields
		assert.Equal(t, "Lost dog <3", stored.Title)
		assert.Equal(t, "Call Anna <anna@example.com>", stored.ContactInfo)
		assert.Equal(t, "a<b and c>d", stored.LostLocation)
	})

	t.Run("field that looks like a tag is present", func(t *testing.T) {
		storage := &MockPostStorage{}
		service := NewPost(storage, &MockMediaStorage{}, testConfig())
		fields := validPostFields()
		fields.ContactInfo = "<anna@example.com>"

		_, err := service.Create(domain.PostCreationData{PostFields: fields, OwnerId: 1})

		require.NoError(t, err)
		assert.Equal(t, "<anna@example.com>", storage.createPostCalls[0].Fields.ContactInfo)
	})

	t.Run("removes stored files when the insert fails", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		storage := &MockPostStorage{createPostFunc: func(domain.PostFields, domain.UserId, []domain.StoredFilename) (domain.PostId, error) {
			return 0, dbErr
		}}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		_, err := service.Create(domain.PostCreationData{
			PostFields: validPostFields(),
			OwnerId:    1,
			Images:     []domain.UploadSlot{slot("a.png"), slot("b.png")},
		})

		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, []domain.StoredFilename{"stored-1.png", "stored-2.png"}, media.RemoveCalls())
	})
}

func TestPostDelete(t *testing.T) {
	owned := func(owner domain.UserId) func(domain.PostId) (domain.PostMetadata, error) {
		return func(id domain.PostId) (domain.PostMetadata, error) {
			return domain.PostMetadata{Id: id, OwnerId: owner}, nil
		}
	}

	t.Run("owner deletes post and every backing file", func(t *testing.T) {
		files := []domain.StoredFilename{"p1.jpg", "p2.png", "c1.gif"}
		storage := &MockPostStorage{
			getPostMetadataFunc: owned(1),
			deletePostFunc: func(domain.PostId) ([]domain.StoredFilename, error) {
				return files, nil
			},
		}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		err := service.Delete(10, 1)

		require.NoError(t, err)
		assert.Equal(t, []domain.PostId{10}, storage.deletePostCalls)
		assert.Equal(t, files, media.RemoveCalls())
	})

	t.Run("other users are refused and nothing changes", func(t *testing.T) {
		storage := &MockPostStorage{getPostMetadataFunc: owned(1)}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		err := service.Delete(10, 2)

		assert.ErrorIs(t, err, internal_errors.ErrUnauthorized)
		assert.Empty(t, storage.deletePostCalls)
		assert.Empty(t, media.RemoveCalls())
	})

	t.Run("missing post", func(t *testing.T) {
		storage := &MockPostStorage{getPostMetadataFunc: func(domain.PostId) (domain.PostMetadata, error) {
			return domain.PostMetadata{}, notFound()
		}}
		service := NewPost(storage, &MockMediaStorage{}, testConfig())

		err := service.Delete(10, 1)

		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
		assert.Empty(t, storage.deletePostCalls)
	})

	t.Run("concurrent delete already removed the rows", func(t *testing.T) {
		storage := &MockPostStorage{
			getPostMetadataFunc: owned(1),
			deletePostFunc: func(domain.PostId) ([]domain.StoredFilename, error) {
				return nil, notFound()
			},
		}
		media := &MockMediaStorage{}
		service := NewPost(storage, media, testConfig())

		err := service.Delete(10, 1)

		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
		assert.Empty(t, media.RemoveCalls())
	})
}

func TestPostReads(t *testing.T) {
	storage := &MockPostStorage{
		listPostsFunc: func() ([]domain.Post, error) {
			return []domain.Post{{PostMetadata: domain.PostMetadata{Id: 2}}, {PostMetadata: domain.PostMetadata{Id: 1}}}, nil
		},
		listPostsByUserFunc: func(userId domain.UserId) ([]domain.Post, error) {
			return []domain.Post{{PostMetadata: domain.PostMetadata{Id: 5, OwnerId: userId}}}, nil
		},
	}
	service := NewPost(storage, &MockMediaStorage{}, testConfig())

	posts, err := service.List()
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	mine, err := service.ListByOwner(3)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.UserId(3), mine[0].OwnerId)

	post, err := service.Get(9)
	require.NoError(t, err)
	assert.Equal(t, domain.PostId(9), post.Id)
}
