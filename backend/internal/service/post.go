package service

import (
	"fmt"
	"strings"

	"github.com/IKUN2788/Lost-pet/shared/config"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/IKUN2788/Lost-pet/shared/logger"
)

type PostService interface {
	Create(data domain.PostCreationData) (domain.PostId, error)
	Get(id domain.PostId) (domain.Post, error)
	List() ([]domain.Post, error)
	ListByOwner(ownerId domain.UserId) ([]domain.Post, error)
	Delete(id domain.PostId, requester domain.UserId) error
}

type Post struct {
	storage PostStorage
	media   MediaStorage
	cfg     *config.Public
}

type PostStorage interface {
	CreatePost(fields domain.PostFields, ownerId domain.UserId, filenames []domain.StoredFilename) (domain.PostId, error)
	GetPost(id domain.PostId) (domain.Post, error)
	GetPostMetadata(id domain.PostId) (domain.PostMetadata, error)
	ListPosts() ([]domain.Post, error)
	ListPostsByUser(userId domain.UserId) ([]domain.Post, error)
	// DeletePost removes the post with its comments and images and returns the
	// filenames of every image row it deleted.
	DeletePost(id domain.PostId) ([]domain.StoredFilename, error)
}

func NewPost(storage PostStorage, media MediaStorage, cfg *config.Public) *Post {
	return &Post{
		storage: storage,
		media:   media,
		cfg:     cfg,
	}
}

func (p *Post) Create(data domain.PostCreationData) (domain.PostId, error) {
	fields, err := cleanPostFields(data.PostFields)
	if err != nil {
		return 0, err
	}

	// post uploads without a filename are dropped before storing
	slots := make([]domain.UploadSlot, 0, len(data.Images))
	for _, slot := range firstN(data.Images, p.cfg.MaxPostImages) {
		if slot.Filename != "" {
			slots = append(slots, slot)
		}
	}
	stored := domain.StoredFilenames(storeSlots(p.media, slots))

	id, err := p.storage.CreatePost(fields, data.OwnerId, stored)
	if err != nil {
		removeAll(p.media, stored)
		return 0, err
	}

	logger.Log.Info("post created", "post_id", id, "user_id", data.OwnerId, "images", len(stored))
	return id, nil
}

func (p *Post) Get(id domain.PostId) (domain.Post, error) {
	return p.storage.GetPost(id)
}

func (p *Post) List() ([]domain.Post, error) {
	return p.storage.ListPosts()
}

func (p *Post) ListByOwner(ownerId domain.UserId) ([]domain.Post, error) {
	return p.storage.ListPostsByUser(ownerId)
}

func (p *Post) Delete(id domain.PostId, requester domain.UserId) error {
	post, err := p.storage.GetPostMetadata(id)
	if err != nil {
		return err
	}
	if !CanDeletePost(requester, post) {
		return errors.Forbidden("You can only delete your own posts")
	}

	filenames, err := p.storage.DeletePost(id)
	if err != nil {
		return err
	}
	removeAll(p.media, filenames)

	logger.Log.Info("post deleted", "post_id", id, "user_id", requester, "files", len(filenames))
	return nil
}

// cleanPostFields trims the fields and requires each to be non-empty. Text is
// otherwise stored as typed.
func cleanPostFields(in domain.PostFields) (domain.PostFields, error) {
	out := domain.PostFields{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		PetType:      strings.TrimSpace(in.PetType),
		LostLocation: strings.TrimSpace(in.LostLocation),
		ContactInfo:  strings.TrimSpace(in.ContactInfo),
	}
	required := []struct {
		name  string
		value string
	}{
		{"title", out.Title},
		{"description", out.Description},
		{"pet_type", out.PetType},
		{"lost_location", out.LostLocation},
		{"contact_info", out.ContactInfo},
	}
	for _, f := range required {
		if f.value == "" {
			return domain.PostFields{}, errors.Validation(fmt.Sprintf("Field %s is required", f.name))
		}
	}
	return out, nil
}
