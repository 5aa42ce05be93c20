package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"employee-admin/internal/model"
	"employee-admin/pkg/apierror"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	validator   tokenValidator
	tokenHeader string
}

// NewAuthMiddleware reads the token from tokenHeader, falling back to a
// bearer Authorization header.
func NewAuthMiddleware(validator tokenValidator, tokenHeader string) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, tokenHeader: strings.TrimSpace(tokenHeader)}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.TokenFromRequest(r)
		if token == "" {
			writeUnauthorized(w, apierror.MsgNotLoggedIn)
			return
		}

		claims, err := m.validator.ValidateToken(r.Context(), token)
		var apiErr *apierror.APIError
		switch {
		case errors.As(err, &apiErr):
			writeUnauthorized(w, "invalid or expired token")
			return
		case err != nil:
			// A failing revocation lookup is not an expired session.
			slog.Error("token validation failed", "path", r.URL.Path, "error", err)
			writeFailure(w, http.StatusInternalServerError, apierror.MsgUnknownError)
			return
		case claims == nil:
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		recordEmployee(r.Context(), claims.EmployeeID)
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func (m *AuthMiddleware) TokenFromRequest(r *http.Request) string {
	if m.tokenHeader != "" {
		if token := strings.TrimSpace(r.Header.Get(m.tokenHeader)); token != "" {
			return token
		}
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok && claims != nil
}

// EmployeeIDFromContext returns the id of the authenticated caller.
func EmployeeIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.EmployeeID, true
}

// WithClaims attaches claims to ctx the same way RequireAuth does.
func WithClaims(ctx context.Context, claims *model.AuthClaims) context.Context {
	return context.WithValue(ctx, authClaimsContextKey, claims)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusUnauthorized, message)
}
