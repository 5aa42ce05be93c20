package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"employee-admin/pkg/apierror"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				slog.Error("panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"error", fmt.Sprintf("%v", recovered),
					"stack", string(debug.Stack()))
				writeFailure(w, http.StatusInternalServerError, apierror.MsgUnknownError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
