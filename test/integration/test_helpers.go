//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"employee-admin/docs"
	"employee-admin/internal/config"
	"employee-admin/internal/database"
	"employee-admin/internal/handler"
	"employee-admin/internal/middleware"
	"employee-admin/internal/repository"
	"employee-admin/internal/router"
	"employee-admin/internal/service"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// openTestDB migrates the database named by DATABASE_URL and resets it to
// the seeded admin account. The test is skipped when no database is set.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, url, database.Options{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))

	_, err = db.Pool.Exec(ctx, `DELETE FROM employee WHERE username <> 'admin'`)
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, `UPDATE employee SET status = 0, password = 'e10adc3949ba59abbe56e057f20f883e' WHERE username = 'admin'`)
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, `DELETE FROM revoked_token`)
	require.NoError(t, err)

	return db
}

func newServer(t *testing.T, db *database.DB) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		RequestTimeout:   10 * time.Second,
		RateLimitRPM:     -1,
		AuthRateLimitRPM: 1000,
		CORSOrigins:      []string{"*"},
		AdminJWT:         config.JWTProfile{Audience: "admin", Secret: "integration-secret", TTL: time.Hour, TokenHeader: "token"},
		PasswordHash:     service.HashMD5,
		DefaultPassword:  "123456",
	}

	hasher, err := service.NewPasswordHasher(cfg.PasswordHash)
	require.NoError(t, err)
	issuer, err := service.NewTokenIssuer(cfg.AdminJWT.Audience, cfg.AdminJWT.Secret, cfg.AdminJWT.TTL)
	require.NoError(t, err)

	employees := service.NewEmployeeService(repository.NewEmployeeRepository(db.Pool), hasher, cfg.DefaultPassword)
	auth := service.NewAuthService(employees, issuer, repository.NewRevokedTokenRepository(db.Pool))
	authMiddleware := middleware.NewAuthMiddleware(auth, cfg.AdminJWT.TokenHeader)

	server := httptest.NewServer(router.New(cfg, authMiddleware, router.Handlers{
		Employee: handler.NewEmployeeHandler(employees, auth, authMiddleware),
		Docs:     handler.NewDocsHandler(docs.OpenAPI),
	}, db.Health))
	t.Cleanup(server.Close)
	return server
}

func login(t *testing.T, server *httptest.Server, username, password string) (int, envelope) {
	t.Helper()
	return call(t, server, http.MethodPost, "/admin/employee/login", "", map[string]string{
		"username": username,
		"password": password,
	})
}

func loginAdmin(t *testing.T, server *httptest.Server) string {
	t.Helper()

	status, body := login(t, server, "admin", "123456")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, body.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func call(t *testing.T, server *httptest.Server, method, path, token string, payload any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}
