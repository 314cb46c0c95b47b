package service

import (
	"strings"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/IKUN2788/Lost-pet/shared/logger"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(username domain.Username, email domain.Email, password domain.Password) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage  UserStorage
	jwt      Jwt
	validate *validator.Validate
}

type UserStorage interface {
	CreateUser(data domain.UserCreationData) (domain.UserId, error)
	GetUser(id domain.UserId) (domain.User, error)
	GetUserByUsername(username domain.Username) (domain.User, error)
	GetUserByEmail(email domain.Email) (domain.User, error)
	// UpdateProfile writes the non-nil fields and returns the avatar that was
	// replaced, if any.
	UpdateProfile(id domain.UserId, fields domain.ProfileFields) (*domain.StoredFilename, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage UserStorage, jwt Jwt) *Auth {
	return &Auth{
		storage:  storage,
		jwt:      jwt,
		validate: validator.New(),
	}
}

// Register creates an account. Username and email must both be unused.
func (a *Auth) Register(username domain.Username, email domain.Email, password domain.Password) (domain.UserId, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return 0, errors.Validation("Username, email and password are required")
	}
	if err := a.validate.Var(email, "email"); err != nil {
		return 0, errors.Validation("Invalid email format")
	}

	if _, err := a.storage.GetUserByUsername(username); err == nil {
		return 0, errors.DuplicateIdentity("Username already taken")
	} else if !errors.IsNotFound(err) {
		return 0, err
	}
	if _, err := a.storage.GetUserByEmail(email); err == nil {
		return 0, errors.DuplicateIdentity("Email already registered")
	} else if !errors.IsNotFound(err) {
		return 0, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}

	id, err := a.storage.CreateUser(domain.UserCreationData{
		Username: username,
		Email:    email,
		PassHash: string(passHash),
	})
	if err != nil {
		return 0, err
	}

	logger.Log.Info("user registered", "user_id", id, "username", username)
	return id, nil
}

// Login returns an access token for valid credentials.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := a.storage.GetUserByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.BadCredentials("Invalid email or password")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", errors.BadCredentials("Invalid email or password")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return "", err
	}
	return token, nil
}
