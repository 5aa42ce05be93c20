package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the admin front-end to call the API; tokenHeaders lists the
// custom headers tokens may arrive in.
func CORS(origins []string, tokenHeaders ...string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	allowed := []string{"Authorization", "Content-Type", requestIDHeader}
	for _, h := range tokenHeaders {
		if h != "" {
			allowed = append(allowed, h)
		}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   allowed,
		ExposedHeaders:   []string{requestIDHeader},
		MaxAge:           3600,
		AllowCredentials: false,
	})

	return handler.Handler
}
