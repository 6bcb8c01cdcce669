package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

const MsgCORSRejected = "Not allowed by CORS"

// CORS allows credentialed requests from the listed origins only. Requests
// with no Origin header (curl, server-to-server, the terminal client) pass
// through; a browser origin outside the list is refused with 403.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		allowed[o] = struct{}{}
		origins = append(origins, o)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return func(next http.Handler) http.Handler {
		withCORS := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[strings.TrimRight(origin, "/")]; !ok {
					writeMessage(w, http.StatusForbidden, MsgCORSRejected)
					return
				}
			}
			withCORS.ServeHTTP(w, r)
		})
	}
}
