package middleware

import (
	"encoding/json"
	"net/http"

	"employee-admin/internal/model"
	"employee-admin/pkg/apierror"
)

// writeFailure writes a failure envelope with the given HTTP status.
func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.Failure(message))
}

// NotFound answers unrouted paths with a failure envelope.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeFailure(w, http.StatusNotFound, apierror.MsgNotFound)
}

// MethodNotAllowed answers known paths hit with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeFailure(w, http.StatusMethodNotAllowed, apierror.MsgMethodNotAllowed)
}
