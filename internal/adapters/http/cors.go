package http

import (
	"net/http"
	"net/url"
	"strings"
)

// corsMiddleware sets CORS headers for origins on the allow list and
// short-circuits preflight requests. The API is read-only, so only GET
// is advertised.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && s.originAllowed(origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Accept, Content-Type")
			h.Set("Access-Control-Max-Age", "86400")
			h.Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// originAllowed reports whether origin matches any configured pattern.
// Patterns are exact origins or host wildcards like "*.example.com";
// a wildcard matches subdomains only, never the bare domain.
func (s *Server) originAllowed(origin string) bool {
	for _, pattern := range s.config.CORS.AllowedOrigins {
		if origin == pattern {
			return true
		}
		if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
			host := origin
			if u, err := url.Parse(origin); err == nil && u.Host != "" {
				host = u.Hostname()
			}
			if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
				return true
			}
		}
	}
	return false
}
