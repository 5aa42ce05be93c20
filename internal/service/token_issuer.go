package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"employee-admin/internal/model"
	"employee-admin/pkg/apierror"
)

// ClaimEmployeeID is the claim carrying the employee id.
const ClaimEmployeeID = "empId"

// TokenIssuer signs and validates HS256 session tokens for one audience.
type TokenIssuer struct {
	audience string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenIssuer(audience string, secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &TokenIssuer{
		audience: audience,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs claims with the issuer's secret. Registered claims (exp, iat,
// jti, aud) are filled in and override caller-supplied values.
func (t *TokenIssuer) Issue(claims map[string]any) (string, error) {
	now := t.now().UTC()

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["aud"] = t.audience
	mapClaims["jti"] = uuid.NewString()
	mapClaims["iat"] = now.Unix()
	mapClaims["exp"] = now.Add(t.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IssueForEmployee issues a token whose only custom claim is the employee id.
func (t *TokenIssuer) IssueForEmployee(employeeID int64) (string, error) {
	return t.Issue(map[string]any{ClaimEmployeeID: employeeID})
}

func (t *TokenIssuer) Validate(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, apierror.Unauthorized("invalid or expired token")
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Unauthorized("invalid token claims")
	}

	// JSON numbers decode as float64.
	rawID, ok := claimsMap[ClaimEmployeeID].(float64)
	if !ok || rawID <= 0 {
		return nil, apierror.Unauthorized("invalid token subject")
	}

	claims := &model.AuthClaims{EmployeeID: int64(rawID), Audience: t.audience}
	claims.TokenID, _ = claimsMap["jti"].(string)
	if exp, err := claimsMap.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Unix()
	}

	return claims, nil
}
