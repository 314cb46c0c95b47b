package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	internal_errors "github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/lib/pq"
)

const commentSelect = `
	SELECT c.id, c.content, c.user_id, u.username, c.post_id, c.created_at, p.user_id
	FROM comments c
	JOIN users u ON u.id = c.user_id
	JOIN posts p ON p.id = c.post_id`

// CreateComment inserts the comment and its image rows in one transaction.
// The parent post is share-locked so it cannot be deleted mid-insert.
func (s *Storage) CreateComment(content string, ownerId domain.UserId, postId domain.PostId, filenames []domain.StoredFilename) (domain.CommentId, error) {
	var id domain.CommentId
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		id, err = s.createComment(tx, content, ownerId, postId, filenames)
		return err
	})
	return id, err
}

// GetComment returns the comment with its images and the owner of its post.
func (s *Storage) GetComment(id domain.CommentId) (domain.Comment, error) {
	c, err := scanComment(s.db.QueryRow(commentSelect+" WHERE c.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, internal_errors.NotFound("Comment not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to query comment: %w", err)
	}
	images, err := s.commentImages(s.db, []domain.CommentId{id})
	if err != nil {
		return domain.Comment{}, err
	}
	c.Images = images[id]
	return c, nil
}

// DeleteComment removes the comment and its image rows, returning the
// filenames of the deleted rows.
func (s *Storage) DeleteComment(id domain.CommentId) ([]domain.StoredFilename, error) {
	var filenames []domain.StoredFilename
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		filenames, err = s.deleteComment(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return filenames, nil
}

func (s *Storage) createComment(q Querier, content string, ownerId domain.UserId, postId domain.PostId, filenames []domain.StoredFilename) (domain.CommentId, error) {
	var locked domain.PostId
	err := q.QueryRow("SELECT id FROM posts WHERE id = $1 FOR SHARE", postId).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NotFound("Post not found")
		}
		return 0, fmt.Errorf("failed to lock post: %w", err)
	}

	var id domain.CommentId
	err = q.QueryRow(
		"INSERT INTO comments(content, user_id, post_id) VALUES($1, $2, $3) RETURNING id",
		content, ownerId, postId,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}

	for _, f := range filenames {
		if _, err := q.Exec("INSERT INTO comment_images(filename, comment_id) VALUES($1, $2)", f, id); err != nil {
			return 0, fmt.Errorf("failed to insert comment image: %w", err)
		}
	}
	return id, nil
}

// postComments returns the comments of a post newest first, with images.
func (s *Storage) postComments(q Querier, postId domain.PostId) ([]domain.Comment, error) {
	rows, err := q.Query(commentSelect+" WHERE c.post_id = $1 ORDER BY c.created_at DESC, c.id DESC", postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	ids := []domain.CommentId{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
		ids = append(ids, c.Id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	rows.Close()
	if len(comments) == 0 {
		return comments, nil
	}

	images, err := s.commentImages(q, ids)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].Images = images[comments[i].Id]
	}
	return comments, nil
}

func (s *Storage) commentImages(q Querier, ids []domain.CommentId) (map[domain.CommentId][]domain.CommentImage, error) {
	rows, err := q.Query("SELECT id, comment_id, filename FROM comment_images WHERE comment_id = ANY($1) ORDER BY id", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query comment images: %w", err)
	}
	defer rows.Close()

	images := make(map[domain.CommentId][]domain.CommentImage, len(ids))
	for rows.Next() {
		var img domain.CommentImage
		if err := rows.Scan(&img.Id, &img.CommentId, &img.Filename); err != nil {
			return nil, fmt.Errorf("failed to scan comment image: %w", err)
		}
		images[img.CommentId] = append(images[img.CommentId], img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment images: %w", err)
	}
	return images, nil
}

func (s *Storage) deleteComment(q Querier, id domain.CommentId) ([]domain.StoredFilename, error) {
	var locked domain.CommentId
	err := q.QueryRow("SELECT id FROM comments WHERE id = $1 FOR UPDATE", id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to lock comment: %w", err)
	}

	filenames, err := deleteReturning(q, "DELETE FROM comment_images WHERE comment_id = $1 RETURNING filename", id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment images: %w", err)
	}
	if _, err := q.Exec("DELETE FROM comments WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	return filenames, nil
}

func scanComment(row rowScanner) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.Id, &c.Content, &c.OwnerId, &c.Author, &c.PostId, &c.CreatedAt, &c.PostOwnerId)
	return c, err
}
