package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func echoClient() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := ClientName(r)
		if !ok {
			name = "anonymous"
		}
		_, _ = w.Write([]byte(name))
	})
}

func TestAPIKeyAuth(t *testing.T) {
	handler := APIKeyAuth(APIKeys{"recruiting": "s3cret", "ats": "other-key"}, "/health")(echoClient())

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid key", "/analyze", "Bearer s3cret", http.StatusOK, "recruiting"},
		{"second key", "/analyze", "Bearer other-key", http.StatusOK, "ats"},
		{"case-insensitive scheme", "/analyze", "bearer s3cret", http.StatusOK, "recruiting"},
		{"missing header", "/analyze", "", http.StatusUnauthorized, ""},
		{"wrong key", "/analyze", "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong scheme", "/analyze", "Basic s3cret", http.StatusUnauthorized, ""},
		{"extra parts", "/analyze", "Bearer s3cret extra", http.StatusUnauthorized, ""},
		{"public path", "/health", "", http.StatusOK, "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAPIKeyAuth_NoKeysDisablesAuth(t *testing.T) {
	handler := APIKeyAuth(nil)(echoClient())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestAPIKeyAuth_EmptyKeyIsIgnored(t *testing.T) {
	handler := APIKeyAuth(APIKeys{"blank": ""})(echoClient())

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// with no usable keys, auth is off
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuth_PreflightSkipsCheck(t *testing.T) {
	handler := APIKeyAuth(APIKeys{"recruiting": "s3cret"})(echoClient())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/analyze", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
