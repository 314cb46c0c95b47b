package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	t.Run("plain http", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SecurityHeaders(false)(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, apiCSP, rr.Header().Get("Content-Security-Policy"))
		assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
	})

	t.Run("https adds hsts", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SecurityHeaders(true)(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
	})
}
