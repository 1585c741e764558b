package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS applies Cross-Origin Resource Sharing headers and preflight
// handling. When allowedHosts is empty any origin is allowed (demo
// default); otherwise the origin's hostname must match an entry,
// ignoring ports when the entry carries none.
func CORS(allowedHosts []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && IsOriginAllowed(origin, allowedHosts) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else if len(allowedHosts) == 0 {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-ID")
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsOriginAllowed reports whether an Origin header value matches the
// allowed hosts list. An empty list allows everything.
func IsOriginAllowed(origin string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := strings.ToLower(parsed.Host)
	hostname := strings.ToLower(parsed.Hostname())

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		allowedHostname := allowed
		if idx := strings.Index(allowed, ":"); idx != -1 {
			allowedHostname = allowed[:idx]
		}

		if host == allowed || hostname == allowedHostname {
			return true
		}
	}

	return false
}
