package apierror

import (
	"fmt"
	"net/http"
)

// Messages surfaced to clients verbatim.
const (
	MsgAccountNotFound  = "account not found"
	MsgPasswordError    = "password error"
	MsgAccountLocked    = "account locked"
	MsgEmployeeNotFound = "employee not found"
	MsgInvalidStatus    = "invalid status"
	MsgAlreadyExists    = "already exists"
	MsgUnknownError     = "unknown error"
	MsgNotLoggedIn      = "not logged in"
	MsgNotFound         = "not found"
	MsgMethodNotAllowed = "method not allowed"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Code so callers can compare against the constructors below.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func AccountNotFound() *APIError {
	return New("ACCOUNT_NOT_FOUND", MsgAccountNotFound, "", http.StatusUnauthorized)
}

func PasswordError() *APIError {
	return New("PASSWORD_ERROR", MsgPasswordError, "", http.StatusUnauthorized)
}

func AccountLocked() *APIError {
	return New("ACCOUNT_LOCKED", MsgAccountLocked, "", http.StatusUnauthorized)
}

func EmployeeNotFound(id int64) *APIError {
	return New("NOT_FOUND", MsgEmployeeNotFound, fmt.Sprintf("id=%d", id), http.StatusNotFound)
}

func InvalidStatus(status int) *APIError {
	return New("INVALID_STATUS", MsgInvalidStatus, fmt.Sprintf("status=%d", status), http.StatusBadRequest)
}

func BadRequest(message string, details string) *APIError {
	return New("BAD_REQUEST", message, details, http.StatusBadRequest)
}

func Unauthorized(message string) *APIError {
	return New("UNAUTHORIZED", message, "", http.StatusUnauthorized)
}
