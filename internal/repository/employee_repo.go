package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"employee-admin/internal/model"
)

const uniqueViolation = "23505"

const employeeColumns = `id, name, username, password, phone, sex, id_number, status,
	create_time, update_time, create_user, update_user`

// uniqueColumns maps unique constraints on the employee table to the column they guard.
var uniqueColumns = map[string]string{
	"idx_employee_username": "username",
}

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) FindByUsername(ctx context.Context, username string) (*model.Employee, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employee WHERE username = $1`, username)

	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee by username: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employee WHERE id = $1`, id)

	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) Insert(ctx context.Context, e model.Employee) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO employee (name, username, password, phone, sex, id_number, status,
		                       create_time, update_time, create_user, update_user)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		e.Name, e.Username, e.Password, e.Phone, e.Sex, e.IDNumber, e.Status,
		e.CreateTime, e.UpdateTime, e.CreateUser, e.UpdateUser).Scan(&id)
	if err != nil {
		if dup := duplicateKey(err, map[string]string{"username": e.Username}); dup != nil {
			return 0, dup
		}
		return 0, fmt.Errorf("insert employee: %w", err)
	}
	return id, nil
}

// Update writes only the columns set on u.
func (r *EmployeeRepository) Update(ctx context.Context, u model.EmployeeUpdate) error {
	query, args, err := buildEmployeeUpdate(u)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) PageQuery(ctx context.Context, q model.EmployeePageQuery) (model.PageResult, error) {
	countSQL, dataSQL, args := buildPageQuery(q)

	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, args[:len(args)-2]...).Scan(&total); err != nil {
		return model.PageResult{}, fmt.Errorf("count employees: %w", err)
	}

	result := model.PageResult{Total: total, Records: make([]model.Employee, 0)}
	if total == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return model.PageResult{}, fmt.Errorf("page employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return model.PageResult{}, fmt.Errorf("scan employee: %w", err)
		}
		result.Records = append(result.Records, *e)
	}
	if err := rows.Err(); err != nil {
		return model.PageResult{}, fmt.Errorf("iterate employees: %w", err)
	}

	return result, nil
}

func scanEmployee(row pgx.Row) (*model.Employee, error) {
	var e model.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Username, &e.Password, &e.Phone, &e.Sex, &e.IDNumber, &e.Status,
		&e.CreateTime, &e.UpdateTime, &e.CreateUser, &e.UpdateUser)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func buildEmployeeUpdate(u model.EmployeeUpdate) (string, []any, error) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Phone != nil {
		add("phone", *u.Phone)
	}
	if u.Sex != nil {
		add("sex", *u.Sex)
	}
	if u.IDNumber != nil {
		add("id_number", *u.IDNumber)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if len(sets) == 0 {
		return "", nil, model.ErrEmptyUpdate
	}

	if !u.UpdateTime.IsZero() {
		add("update_time", u.UpdateTime)
	}
	if u.UpdateUser != 0 {
		add("update_user", u.UpdateUser)
	}

	args = append(args, u.ID)
	query := fmt.Sprintf("UPDATE employee SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args, nil
}

// buildPageQuery returns the count and page statements. The last two args
// are LIMIT and OFFSET; the count statement uses the args before them.
func buildPageQuery(q model.EmployeePageQuery) (string, string, []any) {
	where := ""
	args := make([]any, 0, 3)

	if name := strings.TrimSpace(q.Name); name != "" {
		args = append(args, "%"+escapeLike(name)+"%")
		where = fmt.Sprintf(" WHERE name ILIKE $%d", len(args))
	}

	countSQL := "SELECT COUNT(*) FROM employee" + where

	offset := (q.Page - 1) * q.PageSize
	args = append(args, q.PageSize, offset)
	dataSQL := fmt.Sprintf(
		"SELECT %s FROM employee%s ORDER BY create_time DESC, id DESC LIMIT $%d OFFSET $%d",
		employeeColumns, where, len(args)-1, len(args))

	return countSQL, dataSQL, args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// duplicateKey converts a unique violation into a DuplicateKeyError using the
// constraint name reported by the server and the value the caller wrote.
func duplicateKey(err error, values map[string]string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}

	field, ok := uniqueColumns[pgErr.ConstraintName]
	if !ok {
		field = pgErr.ColumnName
	}

	return &model.DuplicateKeyError{
		Table:      pgErr.TableName,
		Constraint: pgErr.ConstraintName,
		Field:      field,
		Value:      values[field],
	}
}
