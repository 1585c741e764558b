package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name         string
		origin       string
		allowedHosts []string
		want         bool
	}{
		{
			name:         "exact match with port",
			origin:       "http://example.com:8080",
			allowedHosts: []string{"example.com:8080"},
			want:         true,
		},
		{
			name:         "hostname match ignoring port",
			origin:       "http://example.com:3000",
			allowedHosts: []string{"example.com"},
			want:         true,
		},
		{
			name:         "no match",
			origin:       "http://evil.com",
			allowedHosts: []string{"example.com"},
			want:         false,
		},
		{
			name:         "case insensitive",
			origin:       "http://Example.COM",
			allowedHosts: []string{"example.com"},
			want:         true,
		},
		{
			name:         "empty list allows everything",
			origin:       "http://anywhere.test",
			allowedHosts: nil,
			want:         true,
		},
		{
			name:         "garbage origin rejected",
			origin:       "://not-a-url",
			allowedHosts: []string{"example.com"},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOriginAllowed(tt.origin, tt.allowedHosts); got != tt.want {
				t.Errorf("IsOriginAllowed(%q, %v) = %v, want %v", tt.origin, tt.allowedHosts, got, tt.want)
			}
		})
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	handler := CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/accounts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if called {
		t.Error("preflight should not reach the next handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("missing Access-Control-Allow-Headers")
	}
}

func TestCORS_EchoesAllowedOrigin(t *testing.T) {
	handler := CORS([]string{"app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want origin echo", got)
	}
}

func TestCORS_DisallowedOriginGetsNoHeader(t *testing.T) {
	handler := CORS([]string{"app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Origin", "https://evil.test")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}
