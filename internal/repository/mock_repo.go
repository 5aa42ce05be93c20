package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"employee-admin/internal/model"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByUsername(ctx context.Context, username string) (*model.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Insert(ctx context.Context, e model.Employee) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, u model.EmployeeUpdate) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockEmployeeRepository) PageQuery(ctx context.Context, q model.EmployeePageQuery) (model.PageResult, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(model.PageResult), args.Error(1)
}

type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) Revoke(ctx context.Context, tokenID string, employeeID int64, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, employeeID, expiresAt)
	return args.Error(0)
}

func (m *MockRevokedTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedTokenRepository) CleanExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
