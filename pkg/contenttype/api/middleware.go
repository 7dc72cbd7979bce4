package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tendant/content-types/pkg/contenttype"
)

// ScreenHeader names the admin screen serving the request. The "screen"
// query parameter takes precedence.
const ScreenHeader = "X-Content-Screen"

// Middleware represents an HTTP middleware function
type Middleware func(http.Handler) http.Handler

// ScreenMiddleware stores the admin screen named by the request on its
// context, where contenttype.ContextScreenProbe finds it.
func ScreenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		screen := r.URL.Query().Get("screen")
		if screen == "" {
			screen = r.Header.Get(ScreenHeader)
		}
		if screen != "" {
			ctx := contenttype.WithScreen(r.Context(), contenttype.Screen{ContentType: screen})
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware handles CORS headers. Empty lists allow any origin, the
// GET, POST and OPTIONS methods and the Content-Type and screen headers.
func CORSMiddleware(allowedOrigins, allowedMethods, allowedHeaders []string) Middleware {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	if len(allowedMethods) == 0 {
		allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{"Content-Type", ScreenHeader}
	}
	methods := strings.Join(allowedMethods, ", ")
	headers := strings.Join(allowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					allowed = true
					break
				}
			}

			if allowed {
				if origin == "" {
					origin = allowedOrigins[0]
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
			}

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BodyLimitMiddleware limits the size of request bodies
func BodyLimitMiddleware(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// CacheMiddleware marks GET responses cacheable for maxAge seconds. Labels
// and arguments only change when the process restarts. Responses vary on the
// screen header since the title placeholder depends on it.
func CacheMiddleware(maxAge int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
				w.Header().Add("Vary", ScreenHeader)
			}
			next.ServeHTTP(w, r)
		})
	}
}
