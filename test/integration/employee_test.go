//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type employeeView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Status   int    `json:"status"`
}

func findByUsername(t *testing.T, records []employeeView, username string) employeeView {
	t.Helper()
	for _, r := range records {
		if r.Username == username {
			return r
		}
	}
	t.Fatalf("employee %q not in page", username)
	return employeeView{}
}

func pageEmployees(t *testing.T, status int, body envelope) (int64, []employeeView) {
	t.Helper()
	require.Equal(t, http.StatusOK, status)

	var page struct {
		Total   int64          `json:"total"`
		Records []employeeView `json:"records"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &page))
	return page.Total, page.Records
}

func TestEmployeeLifecycle(t *testing.T) {
	db := openTestDB(t)
	server := newServer(t, db)
	token := loginAdmin(t, server)

	status, body := call(t, server, http.MethodPost, "/admin/employee", token, map[string]string{
		"username": "alice",
		"name":     "Alice",
		"phone":    "13800000000",
		"sex":      "1",
		"idNumber": "110101199001011234",
	})
	require.Equal(t, http.StatusOK, status, body.Msg)

	status, body = call(t, server, http.MethodPost, "/admin/employee", token, map[string]string{"username": "alice", "name": "Other"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "alice already exists", body.Msg)

	status, body = call(t, server, http.MethodGet, "/admin/employee/page?name=Alice", token, nil)
	_, records := pageEmployees(t, status, body)
	alice := findByUsername(t, records, "alice")
	assert.Equal(t, "*****", alice.Password)
	assert.Equal(t, 0, alice.Status)

	// New accounts log in with the default password.
	status, _ = login(t, server, "alice", "123456")
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, server, http.MethodPost, fmt.Sprintf("/admin/employee/status/1?id=%d", alice.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = login(t, server, "alice", "123456")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "account locked", body.Msg)

	status, _ = call(t, server, http.MethodPut, "/admin/employee", token, map[string]any{"id": alice.ID, "name": "Alice B"})
	require.Equal(t, http.StatusOK, status)

	status, body = call(t, server, http.MethodGet, fmt.Sprintf("/admin/employee/%d", alice.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	var fetched employeeView
	require.NoError(t, json.Unmarshal(body.Data, &fetched))
	assert.Equal(t, "Alice B", fetched.Name)
	assert.Equal(t, "13800000000", fetched.Phone)
	assert.Equal(t, 1, fetched.Status, "partial update must not touch status")
	assert.Equal(t, "*****", fetched.Password)
}

func TestPageQuery_Paginates(t *testing.T) {
	db := openTestDB(t)
	server := newServer(t, db)
	token := loginAdmin(t, server)

	for i := 1; i <= 5; i++ {
		status, body := call(t, server, http.MethodPost, "/admin/employee", token, map[string]string{
			"username": fmt.Sprintf("pager%d", i),
			"name":     fmt.Sprintf("Pager %d", i),
		})
		require.Equal(t, http.StatusOK, status, body.Msg)
	}

	status, body := call(t, server, http.MethodGet, "/admin/employee/page?page=1&pageSize=2&name=Pager", token, nil)
	total, records := pageEmployees(t, status, body)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 2)

	status, body = call(t, server, http.MethodGet, "/admin/employee/page?page=3&pageSize=2&name=Pager", token, nil)
	total, records = pageEmployees(t, status, body)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 1)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := openTestDB(t)
	server := newServer(t, db)
	token := loginAdmin(t, server)

	status, _ := call(t, server, http.MethodGet, "/admin/employee/page", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := call(t, server, http.MethodPost, "/admin/employee/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Code)

	status, body = call(t, server, http.MethodGet, "/admin/employee/page", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 0, body.Code)
}

func TestGetByID_Missing(t *testing.T) {
	db := openTestDB(t)
	server := newServer(t, db)
	token := loginAdmin(t, server)

	status, body := call(t, server, http.MethodGet, "/admin/employee/999999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "employee not found", body.Msg)
}
