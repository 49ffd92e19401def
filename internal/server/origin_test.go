package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestWithOrigin(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ws/broadcast", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestNewCheckOrigin(t *testing.T) {
	tests := []struct {
		name          string
		appURL        string
		isDevelopment bool
		origin        string
		want          bool
	}{
		{"empty origin allowed", "https://example.com", false, "", true},
		{"app origin allowed", "https://example.com", false, "https://example.com", true},
		{"foreign origin rejected", "https://example.com", false, "https://evil.com", false},
		{"localhost rejected in production", "https://example.com", false, "http://localhost:3000", false},
		{"localhost allowed in development", "https://example.com", true, "http://localhost:3000", true},
		{"127.0.0.1 allowed in development", "https://example.com", true, "http://127.0.0.1:3000", true},
		{"garbage origin rejected", "https://example.com", true, "://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkOrigin := NewCheckOrigin(tt.appURL, tt.isDevelopment)
			assert.Equal(t, tt.want, checkOrigin(requestWithOrigin(tt.origin)))
		})
	}
}

func TestExtractOrigin(t *testing.T) {
	assert.Equal(t, "https://example.com", extractOrigin("https://example.com/some/path"))
	assert.Equal(t, "", extractOrigin("not a url"))
	assert.Equal(t, "", extractOrigin(""))
}
