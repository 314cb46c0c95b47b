package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/IKUN2788/Lost-pet/shared/api"
	"github.com/IKUN2788/Lost-pet/shared/logger"
	"github.com/IKUN2788/Lost-pet/shared/middleware/ratelimiter"
	"github.com/IKUN2788/Lost-pet/shared/utils"
)

// IdentityFunc names the bucket a request is charged to.
type IdentityFunc func(r *http.Request) (string, error)

// RateLimit charges each request to the bucket named by identity. A request
// over the limit gets 429 with Retry-After set to one refill interval and the
// usual {success:false} body.
func RateLimit(rl *ratelimiter.UserRateLimiter, identity IdentityFunc) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(math.Ceil(rl.RefillInterval().Seconds())))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := identity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(id) {
				logger.Log.Debug("rate limited", "identity", id, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(api.Result{Success: false, Message: "Too many requests, try again later"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext keys buckets by account. Only valid behind NeedAuth.
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("no authenticated user to rate limit")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}

// GetIP keys buckets by the TCP peer. X-Forwarded-For and X-Real-IP are
// client-controlled and ignored.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid peer address %q", r.RemoteAddr)
	}
	return ip, nil
}
