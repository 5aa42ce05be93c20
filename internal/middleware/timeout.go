package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"employee-admin/internal/model"
)

// Timeout bounds handler run time. Every route behind it answers JSON, so the
// content type is set before http.TimeoutHandler can write its own body.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, _ := json.Marshal(model.Failure("request timed out"))
	message := string(body)

	return func(next http.Handler) http.Handler {
		limited := http.TimeoutHandler(next, timeout, message)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			limited.ServeHTTP(w, r)
		})
	}
}
