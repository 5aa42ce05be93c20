package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"employee-admin/internal/model"
	"employee-admin/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, model.Success(data))
}

// writeError is the single place where errors become client responses.
// Nothing but the envelope ever reaches the client.
func writeError(w http.ResponseWriter, err error) {
	status, msg := mapError(err)
	writeJSON(w, status, model.Failure(msg))
}

func mapError(err error) (int, string) {
	var (
		apiErr        *apierror.APIError
		dupErr        *model.DuplicateKeyError
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr.HTTPStatus, apiErr.Message
	case errors.As(err, &dupErr):
		value := dupErr.Value
		if value == "" {
			value = dupErr.Field
		}
		return http.StatusConflict, value + " " + apierror.MsgAlreadyExists
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationMessage(validationErr)
	case errors.Is(err, model.ErrEmployeeNotFound):
		return http.StatusNotFound, apierror.MsgEmployeeNotFound
	default:
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, apierror.MsgUnknownError
	}
}

func validationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "invalid input"
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func writeJSON(w http.ResponseWriter, status int, body model.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
