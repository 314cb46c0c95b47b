package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	internal_errors "github.com/IKUN2788/Lost-pet/shared/errors"
	sharedpg "github.com/IKUN2788/Lost-pet/shared/storage/pg"
)

const userColumns = "id, username, email, password_hash, real_name, phone, location, bio, avatar, created_at"

// CreateUser inserts a user. Unique violations on username or email map to a
// DuplicateIdentity error.
func (s *Storage) CreateUser(data domain.UserCreationData) (domain.UserId, error) {
	var id domain.UserId
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		id, err = s.createUser(tx, data)
		return err
	})
	return id, err
}

func (s *Storage) GetUser(id domain.UserId) (domain.User, error) {
	return s.getUser(s.db, "id = $1", id)
}

func (s *Storage) GetUserByUsername(username domain.Username) (domain.User, error) {
	return s.getUser(s.db, "username = $1", username)
}

func (s *Storage) GetUserByEmail(email domain.Email) (domain.User, error) {
	return s.getUser(s.db, "email = $1", email)
}

// UpdateProfile writes the non-nil fields. When a new avatar is set the
// previous one is returned so the caller can remove its file.
func (s *Storage) UpdateProfile(id domain.UserId, fields domain.ProfileFields) (*domain.StoredFilename, error) {
	var previous *domain.StoredFilename
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		previous, err = s.updateProfile(tx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return previous, nil
}

func (s *Storage) createUser(q Querier, data domain.UserCreationData) (domain.UserId, error) {
	var id domain.UserId
	err := q.QueryRow(
		"INSERT INTO users(username, email, password_hash) VALUES($1, $2, $3) RETURNING id",
		data.Username, data.Email, data.PassHash,
	).Scan(&id)
	if err != nil {
		if constraint, ok := sharedpg.UniqueViolation(err); ok {
			if strings.Contains(constraint, "username") {
				return 0, internal_errors.DuplicateIdentity("Username already taken")
			}
			return 0, internal_errors.DuplicateIdentity("Email already registered")
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) getUser(q Querier, where string, arg any) (domain.User, error) {
	var user domain.User
	var realName, phone, location, bio, avatar sql.NullString
	err := q.QueryRow("SELECT "+userColumns+" FROM users WHERE "+where, arg).Scan(
		&user.Id, &user.Username, &user.Email, &user.PassHash,
		&realName, &phone, &location, &bio, &avatar, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	user.RealName = nullableString(realName)
	user.Phone = nullableString(phone)
	user.Location = nullableString(location)
	user.Bio = nullableString(bio)
	user.Avatar = nullableString(avatar)
	return user, nil
}

func (s *Storage) updateProfile(q Querier, id domain.UserId, fields domain.ProfileFields) (*domain.StoredFilename, error) {
	var current sql.NullString
	err := q.QueryRow("SELECT avatar FROM users WHERE id = $1 FOR UPDATE", id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	_, err = q.Exec(`
		UPDATE users SET
			real_name = COALESCE($2, real_name),
			phone     = COALESCE($3, phone),
			location  = COALESCE($4, location),
			bio       = COALESCE($5, bio),
			avatar    = COALESCE($6, avatar)
		WHERE id = $1`,
		id, fields.RealName, fields.Phone, fields.Location, fields.Bio, fields.Avatar,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if fields.Avatar == nil {
		return nil, nil
	}
	return nullableString(current), nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
