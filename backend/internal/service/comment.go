package service

import (
	"strings"

	"github.com/IKUN2788/Lost-pet/shared/config"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/IKUN2788/Lost-pet/shared/logger"
)

type CommentService interface {
	Create(data domain.CommentCreationData) (domain.CommentId, error)
	Delete(id domain.CommentId, requester domain.UserId) error
}

type Comment struct {
	storage CommentStorage
	media   MediaStorage
	cfg     *config.Public
}

type CommentStorage interface {
	// CreateComment returns a NotFound error when the post does not exist.
	CreateComment(content string, ownerId domain.UserId, postId domain.PostId, filenames []domain.StoredFilename) (domain.CommentId, error)
	// GetComment fills PostOwnerId with the owner of the parent post.
	GetComment(id domain.CommentId) (domain.Comment, error)
	DeleteComment(id domain.CommentId) ([]domain.StoredFilename, error)
}

func NewComment(storage CommentStorage, media MediaStorage, cfg *config.Public) *Comment {
	return &Comment{
		storage: storage,
		media:   media,
		cfg:     cfg,
	}
}

func (c *Comment) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	content := strings.TrimSpace(data.Content)
	if content == "" {
		return 0, errors.Validation("Comment cannot be empty")
	}

	// every slot goes through the store step; empty ones come back absent
	outcomes := storeSlots(c.media, firstN(data.Images, c.cfg.MaxCommentImages))
	stored := domain.StoredFilenames(outcomes)

	id, err := c.storage.CreateComment(content, data.OwnerId, data.PostId, stored)
	if err != nil {
		removeAll(c.media, stored)
		return 0, err
	}

	logger.Log.Info("comment created", "comment_id", id, "post_id", data.PostId, "user_id", data.OwnerId, "images", len(stored))
	return id, nil
}

func (c *Comment) Delete(id domain.CommentId, requester domain.UserId) error {
	comment, err := c.storage.GetComment(id)
	if err != nil {
		return err
	}
	if !CanDeleteComment(requester, comment) {
		return errors.Forbidden("You can only delete your own comments or comments on your posts")
	}

	filenames, err := c.storage.DeleteComment(id)
	if err != nil {
		return err
	}
	removeAll(c.media, filenames)

	logger.Log.Info("comment deleted", "comment_id", id, "user_id", requester, "files", len(filenames))
	return nil
}
