// Package jwt issues the access tokens handed out at login and checks them on
// the way back in.
package jwt

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/IKUN2788/Lost-pet/shared/domain"
	internal_errors "github.com/IKUN2788/Lost-pet/shared/errors"
	"github.com/IKUN2788/Lost-pet/shared/logger"
	"github.com/golang-jwt/jwt/v5"
)

// Claims identify the account an access token was issued to.
type Claims struct {
	UserId   domain.UserId   `json:"uid"`
	Username domain.Username `json:"username"`
	jwt.RegisteredClaims
}

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(tokenStr string) (*Claims, error)
}

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey: []byte(secretKey), ttl: ttl}
}

var errInvalidToken = &internal_errors.ErrorWithStatusCode{
	Message:    "Invalid or expired access token",
	StatusCode: http.StatusUnauthorized,
	Kind:       internal_errors.ErrUnauthorized,
}

// NewToken signs an HS256 token for user that expires after the configured TTL.
func (j *Jwt) NewToken(user domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserId:   user.Id,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.Id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		logger.Log.Error("failed to sign access token", "user_id", user.Id, "error", err)
		return "", errors.New("failed to issue access token")
	}
	return signed, nil
}

// DecodeToken accepts only HS256 tokens with an expiry and a user id.
func (j *Jwt) DecodeToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return j.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		logger.Log.Debug("access token rejected", "error", err)
		return nil, errInvalidToken
	}
	if claims.UserId <= 0 {
		return nil, errInvalidToken
	}
	return claims, nil
}
