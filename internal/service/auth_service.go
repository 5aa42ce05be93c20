package service

import (
	"context"
	"log/slog"
	"time"

	"employee-admin/internal/model"
	"employee-admin/pkg/apierror"
)

// RevocationStore keeps the ids of logged-out tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, employeeID int64, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	CleanExpired(ctx context.Context) (int64, error)
}

// AuthService issues session tokens for employees who pass Login and
// validates them on later requests.
type AuthService struct {
	employees   *EmployeeService
	issuer      *TokenIssuer
	revocations RevocationStore
}

func NewAuthService(employees *EmployeeService, issuer *TokenIssuer, revocations RevocationStore) *AuthService {
	return &AuthService{employees: employees, issuer: issuer, revocations: revocations}
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (model.EmployeeLoginResponse, error) {
	employee, err := s.employees.Login(ctx, username, password)
	if err != nil {
		slog.Warn("employee login rejected", "username", username, "error", err)
		return model.EmployeeLoginResponse{}, err
	}

	token, err := s.issuer.IssueForEmployee(employee.ID)
	if err != nil {
		return model.EmployeeLoginResponse{}, err
	}

	slog.Info("employee logged in", "id", employee.ID, "username", employee.Username)
	return model.EmployeeLoginResponse{
		ID:       employee.ID,
		UserName: employee.Username,
		Name:     employee.Name,
		Token:    token,
	}, nil
}

// Logout revokes the presented token when there is one. It never fails the
// request: a missing or already invalid token means there is nothing to revoke.
func (s *AuthService) Logout(ctx context.Context, tokenString string) {
	if tokenString == "" || s.revocations == nil {
		return
	}

	claims, err := s.issuer.Validate(tokenString)
	if err != nil || claims.TokenID == "" {
		return
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.EmployeeID, time.Unix(claims.ExpiresAt, 0).UTC()); err != nil {
		slog.Error("failed to revoke token", "employee_id", claims.EmployeeID, "error", err)
		return
	}
	slog.Info("employee logged out", "id", claims.EmployeeID)
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*model.AuthClaims, error) {
	claims, err := s.issuer.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	if s.revocations != nil && claims.TokenID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apierror.Unauthorized("token has been revoked")
		}
	}

	return claims, nil
}

// StartCleanupTicker drops expired revocations on every tick until ctx is cancelled.
func (s *AuthService) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	if s.revocations == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.cleanExpired(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanExpired(ctx)
		}
	}
}

func (s *AuthService) cleanExpired(ctx context.Context) {
	removed, err := s.revocations.CleanExpired(ctx)
	if err != nil {
		slog.Error("revoked token cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("revoked tokens cleaned", "removed", removed)
	}
}
