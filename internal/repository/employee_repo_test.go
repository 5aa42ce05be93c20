package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-admin/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int        { return &i }

func TestBuildEmployeeUpdate_OnlyNameLeavesStatusAlone(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	query, args, err := buildEmployeeUpdate(model.EmployeeUpdate{
		ID:         7,
		Name:       strPtr("Alice"),
		UpdateTime: now,
		UpdateUser: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE employee SET name = $1, update_time = $2, update_user = $3 WHERE id = $4", query)
	assert.Equal(t, []any{"Alice", now, int64(1), int64(7)}, args)
	assert.NotContains(t, query, "status")
	assert.NotContains(t, query, "password")
	assert.NotContains(t, query, "username")
}

func TestBuildEmployeeUpdate_StatusOnly(t *testing.T) {
	query, args, err := buildEmployeeUpdate(model.EmployeeUpdate{ID: 3, Status: intPtr(model.StatusDisabled)})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE employee SET status = $1 WHERE id = $2", query)
	assert.Equal(t, []any{model.StatusDisabled, int64(3)}, args)
}

func TestBuildEmployeeUpdate_AllFields(t *testing.T) {
	query, _, err := buildEmployeeUpdate(model.EmployeeUpdate{
		ID:       9,
		Name:     strPtr("Bob"),
		Phone:    strPtr("13800000000"),
		Sex:      strPtr("1"),
		IDNumber: strPtr("110101199001010047"),
		Status:   intPtr(model.StatusEnabled),
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE employee SET name = $1, phone = $2, sex = $3, id_number = $4, status = $5 WHERE id = $6", query)
}

func TestBuildEmployeeUpdate_EmptyUpdateRejected(t *testing.T) {
	_, _, err := buildEmployeeUpdate(model.EmployeeUpdate{ID: 1, UpdateTime: time.Now(), UpdateUser: 1})
	assert.ErrorIs(t, err, model.ErrEmptyUpdate)
}

func TestBuildPageQuery(t *testing.T) {
	t.Run("without filter", func(t *testing.T) {
		countSQL, dataSQL, args := buildPageQuery(model.EmployeePageQuery{Page: 1, PageSize: 2})

		assert.Equal(t, "SELECT COUNT(*) FROM employee", countSQL)
		assert.Contains(t, dataSQL, "ORDER BY create_time DESC, id DESC LIMIT $1 OFFSET $2")
		assert.Equal(t, []any{2, 0}, args)
	})

	t.Run("with name filter", func(t *testing.T) {
		countSQL, dataSQL, args := buildPageQuery(model.EmployeePageQuery{Page: 3, PageSize: 10, Name: " a_b "})

		assert.Equal(t, "SELECT COUNT(*) FROM employee WHERE name ILIKE $1", countSQL)
		assert.Contains(t, dataSQL, "WHERE name ILIKE $1 ORDER BY create_time DESC, id DESC LIMIT $2 OFFSET $3")
		assert.Equal(t, []any{`%a\_b%`, 10, 20}, args)
	})
}

func TestDuplicateKey(t *testing.T) {
	t.Run("unique violation on username", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           uniqueViolation,
			Message:        `duplicate key value violates unique constraint "idx_employee_username"`,
			TableName:      "employee",
			ConstraintName: "idx_employee_username",
		}

		err := duplicateKey(pgErr, map[string]string{"username": "alice"})

		var dup *model.DuplicateKeyError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "username", dup.Field)
		assert.Equal(t, "alice", dup.Value)
		assert.Equal(t, "employee", dup.Table)
	})

	t.Run("other pg error", func(t *testing.T) {
		assert.Nil(t, duplicateKey(&pgconn.PgError{Code: "23503"}, nil))
	})

	t.Run("non pg error", func(t *testing.T) {
		assert.Nil(t, duplicateKey(errors.New("connection reset"), nil))
	})
}
