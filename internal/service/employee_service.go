package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"employee-admin/internal/model"
	"employee-admin/pkg/apierror"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// EmployeeStore is the persistence contract of the employee table.
// Update must only write the non-nil fields of the update.
type EmployeeStore interface {
	FindByUsername(ctx context.Context, username string) (*model.Employee, error)
	FindByID(ctx context.Context, id int64) (*model.Employee, error)
	Insert(ctx context.Context, e model.Employee) (int64, error)
	Update(ctx context.Context, u model.EmployeeUpdate) error
	PageQuery(ctx context.Context, q model.EmployeePageQuery) (model.PageResult, error)
}

type EmployeeService struct {
	store           EmployeeStore
	hasher          *PasswordHasher
	defaultPassword string
	now             func() time.Time
}

func NewEmployeeService(store EmployeeStore, hasher *PasswordHasher, defaultPassword string) *EmployeeService {
	return &EmployeeService{
		store:           store,
		hasher:          hasher,
		defaultPassword: defaultPassword,
		now:             time.Now,
	}
}

// Login checks, in order, that the account exists, the password matches and
// the account is enabled. The returned employee still carries the hash.
func (s *EmployeeService) Login(ctx context.Context, username string, password string) (*model.Employee, error) {
	employee, err := s.store.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, model.ErrEmployeeNotFound) {
		return nil, apierror.AccountNotFound()
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, employee.Password) {
		return nil, apierror.PasswordError()
	}

	if employee.Disabled() {
		return nil, apierror.AccountLocked()
	}

	return employee, nil
}

// Save registers a new employee. Status and password are always forced to
// enabled and the default password, whatever the request carries.
func (s *EmployeeService) Save(ctx context.Context, actorID int64, req model.EmployeeRequest) error {
	if req.Username == nil || strings.TrimSpace(*req.Username) == "" {
		return apierror.BadRequest("username is required", "username")
	}

	hash, err := s.hasher.Hash(s.defaultPassword)
	if err != nil {
		return err
	}

	now := s.now()
	employee := model.Employee{
		Username:   strings.TrimSpace(*req.Username),
		Name:       deref(req.Name),
		Phone:      deref(req.Phone),
		Sex:        deref(req.Sex),
		IDNumber:   deref(req.IDNumber),
		Status:     model.StatusEnabled,
		Password:   hash,
		CreateTime: now,
		UpdateTime: now,
		CreateUser: actorID,
		UpdateUser: actorID,
	}

	id, err := s.store.Insert(ctx, employee)
	if err != nil {
		return err
	}

	slog.Info("employee created", "id", id, "username", employee.Username, "actor_id", actorID)
	return nil
}

func (s *EmployeeService) PageQuery(ctx context.Context, q model.EmployeePageQuery) (model.PageResult, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	q.Name = strings.TrimSpace(q.Name)

	result, err := s.store.PageQuery(ctx, q)
	if err != nil {
		return model.PageResult{}, err
	}

	for i := range result.Records {
		result.Records[i].Password = model.PasswordMask
	}
	return result, nil
}

// SetStatus enables or disables an account.
func (s *EmployeeService) SetStatus(ctx context.Context, actorID int64, status int, id int64) error {
	if !model.ValidStatus(status) {
		return apierror.InvalidStatus(status)
	}
	if id <= 0 {
		return apierror.BadRequest("employee id is required", "id")
	}

	err := s.store.Update(ctx, model.EmployeeUpdate{ID: id, Status: &status})
	if errors.Is(err, model.ErrEmployeeNotFound) {
		return apierror.EmployeeNotFound(id)
	}
	if err != nil {
		return err
	}

	slog.Info("employee status changed", "id", id, "status", status, "actor_id", actorID)
	return nil
}

// GetByID returns nil without error when no employee has the id.
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	employee, err := s.store.FindByID(ctx, id)
	if errors.Is(err, model.ErrEmployeeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	employee.Password = model.PasswordMask
	return employee, nil
}

// Update applies the supplied fields to an existing employee. Username and
// password are not updatable here.
func (s *EmployeeService) Update(ctx context.Context, actorID int64, req model.EmployeeRequest) error {
	if req.ID == nil || *req.ID <= 0 {
		return apierror.BadRequest("employee id is required", "id")
	}

	update := model.EmployeeUpdate{
		ID:         *req.ID,
		Name:       req.Name,
		Phone:      req.Phone,
		Sex:        req.Sex,
		IDNumber:   req.IDNumber,
		UpdateTime: s.now(),
		UpdateUser: actorID,
	}

	err := s.store.Update(ctx, update)
	switch {
	case errors.Is(err, model.ErrEmployeeNotFound):
		return apierror.EmployeeNotFound(update.ID)
	case errors.Is(err, model.ErrEmptyUpdate):
		return apierror.BadRequest("no fields to update", "")
	case err != nil:
		return err
	}

	slog.Info("employee updated", "id", update.ID, "actor_id", actorID)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
