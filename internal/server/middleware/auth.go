// Package middleware provides HTTP middleware for API key authentication.
package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// clientKey is the context key for storing the authenticated client name.
const clientKey ContextKey = "client"

// APIKeys maps a client name to its secret key
type APIKeys map[string]string

// APIKeyAuth creates middleware that requires "Authorization: Bearer <key>" with one of keys
// and adds the matching client name to the request context. Paths in public skip the check.
// An empty key set disables authentication.
func APIKeyAuth(keys APIKeys, public ...string) func(http.Handler) http.Handler {
	digests := make(map[string][sha256.Size]byte, len(keys))
	for name, key := range keys {
		if key != "" {
			digests[name] = sha256.Sum256([]byte(key))
		}
	}
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		if len(digests) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if open[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			name, ok := lookup(digests, token)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), clientKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses a case-insensitive "Bearer <token>" header
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// lookup compares token against every key in constant time
func lookup(digests map[string][sha256.Size]byte, token string) (string, bool) {
	sum := sha256.Sum256([]byte(token))
	match := ""
	for name, digest := range digests {
		if subtle.ConstantTimeCompare(sum[:], digest[:]) == 1 {
			match = name
		}
	}
	return match, match != ""
}

// ClientName returns the authenticated client name from the request context.
func ClientName(r *http.Request) (string, bool) {
	name, ok := r.Context().Value(clientKey).(string)
	return name, ok
}

// ClientKey returns the context key for the client name (for testing purposes).
func ClientKey() ContextKey {
	return clientKey
}
