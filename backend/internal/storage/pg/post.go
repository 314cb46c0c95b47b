package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	internal_errors "github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/lib/pq"
)

const postSelect = `
	SELECT p.id, p.title, p.description, p.pet_type, p.lost_location, p.contact_info,
	       p.user_id, u.username, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.user_id`

// CreatePost inserts the post and one image row per filename in a single
// transaction.
func (s *Storage) CreatePost(fields domain.PostFields, ownerId domain.UserId, filenames []domain.StoredFilename) (domain.PostId, error) {
	var id domain.PostId
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		id, err = s.createPost(tx, fields, ownerId, filenames)
		return err
	})
	return id, err
}

// GetPost returns the post with its images and its comments newest first.
func (s *Storage) GetPost(id domain.PostId) (domain.Post, error) {
	metadata, err := s.getPostMetadata(s.db, id)
	if err != nil {
		return domain.Post{}, err
	}
	images, err := s.postImages(s.db, []domain.PostId{id})
	if err != nil {
		return domain.Post{}, err
	}
	comments, err := s.postComments(s.db, id)
	if err != nil {
		return domain.Post{}, err
	}
	return domain.Post{PostMetadata: metadata, Images: images[id], Comments: comments}, nil
}

func (s *Storage) GetPostMetadata(id domain.PostId) (domain.PostMetadata, error) {
	return s.getPostMetadata(s.db, id)
}

// ListPosts returns every post newest first, with images but without comments.
func (s *Storage) ListPosts() ([]domain.Post, error) {
	return s.listPosts(s.db, postSelect+" ORDER BY p.created_at DESC, p.id DESC")
}

func (s *Storage) ListPostsByUser(userId domain.UserId) ([]domain.Post, error) {
	return s.listPosts(s.db, postSelect+" WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC", userId)
}

// DeletePost removes the post, its comments and every image row beneath them
// in one transaction, returning the filenames of the deleted image rows. The
// post row is locked first, so of two concurrent deletes the second gets
// NotFound.
func (s *Storage) DeletePost(id domain.PostId) ([]domain.StoredFilename, error) {
	var filenames []domain.StoredFilename
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		filenames, err = s.deletePost(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return filenames, nil
}

func (s *Storage) createPost(q Querier, fields domain.PostFields, ownerId domain.UserId, filenames []domain.StoredFilename) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRow(`
		INSERT INTO posts(title, description, pet_type, lost_location, contact_info, user_id)
		VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
		fields.Title, fields.Description, fields.PetType, fields.LostLocation, fields.ContactInfo, ownerId,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	for _, f := range filenames {
		if _, err := q.Exec("INSERT INTO post_images(filename, post_id) VALUES($1, $2)", f, id); err != nil {
			return 0, fmt.Errorf("failed to insert post image: %w", err)
		}
	}
	return id, nil
}

func (s *Storage) getPostMetadata(q Querier, id domain.PostId) (domain.PostMetadata, error) {
	m, err := scanPostMetadata(q.QueryRow(postSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PostMetadata{}, internal_errors.NotFound("Post not found")
		}
		return domain.PostMetadata{}, fmt.Errorf("failed to query post: %w", err)
	}
	return m, nil
}

func (s *Storage) listPosts(q Querier, query string, args ...any) ([]domain.Post, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	ids := []domain.PostId{}
	for rows.Next() {
		m, err := scanPostMetadata(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, domain.Post{PostMetadata: m})
		ids = append(ids, m.Id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	images, err := s.postImages(q, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Images = images[posts[i].Id]
	}
	return posts, nil
}

// postImages groups image rows by post id, in insertion order.
func (s *Storage) postImages(q Querier, ids []domain.PostId) (map[domain.PostId][]domain.PostImage, error) {
	rows, err := q.Query("SELECT id, post_id, filename FROM post_images WHERE post_id = ANY($1) ORDER BY id", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query post images: %w", err)
	}
	defer rows.Close()

	images := make(map[domain.PostId][]domain.PostImage, len(ids))
	for rows.Next() {
		var img domain.PostImage
		if err := rows.Scan(&img.Id, &img.PostId, &img.Filename); err != nil {
			return nil, fmt.Errorf("failed to scan post image: %w", err)
		}
		images[img.PostId] = append(images[img.PostId], img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post images: %w", err)
	}
	return images, nil
}

func (s *Storage) deletePost(q Querier, id domain.PostId) ([]domain.StoredFilename, error) {
	var locked domain.PostId
	err := q.QueryRow("SELECT id FROM posts WHERE id = $1 FOR UPDATE", id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("failed to lock post: %w", err)
	}

	commentFiles, err := deleteReturning(q, `
		DELETE FROM comment_images
		WHERE comment_id IN (SELECT id FROM comments WHERE post_id = $1)
		RETURNING filename`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment images: %w", err)
	}
	if _, err := q.Exec("DELETE FROM comments WHERE post_id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to delete comments: %w", err)
	}
	postFiles, err := deleteReturning(q, "DELETE FROM post_images WHERE post_id = $1 RETURNING filename", id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post images: %w", err)
	}
	if _, err := q.Exec("DELETE FROM posts WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	return append(postFiles, commentFiles...), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostMetadata(row rowScanner) (domain.PostMetadata, error) {
	var m domain.PostMetadata
	err := row.Scan(&m.Id, &m.Title, &m.Description, &m.PetType, &m.LostLocation, &m.ContactInfo,
		&m.OwnerId, &m.Author, &m.CreatedAt)
	return m, err
}

// deleteReturning runs a DELETE ... RETURNING filename and collects the names.
func deleteReturning(q Querier, query string, args ...any) ([]domain.StoredFilename, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filenames []domain.StoredFilename
	for rows.Next() {
		var f domain.StoredFilename
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		filenames = append(filenames, f)
	}
	return filenames, rows.Err()
}
