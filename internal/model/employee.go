package model

import "time"

// Employee account status. The numbering matches the persisted column.
const (
	StatusEnabled  = 0
	StatusDisabled = 1
)

// PasswordMask replaces the stored hash on every read path exposed to clients.
const PasswordMask = "*****"

type Employee struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Password   string    `json:"password"`
	Phone      string    `json:"phone"`
	Sex        string    `json:"sex"`
	IDNumber   string    `json:"idNumber"`
	Status     int       `json:"status"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
	CreateUser int64     `json:"createUser"`
	UpdateUser int64     `json:"updateUser"`
}

func (e Employee) Disabled() bool {
	return e.Status == StatusDisabled
}

// ValidStatus reports whether status is one of the defined account states.
func ValidStatus(status int) bool {
	return status == StatusEnabled || status == StatusDisabled
}

// EmployeeUpdate is a partial update keyed by ID. Nil fields are left untouched.
type EmployeeUpdate struct {
	ID         int64
	Name       *string
	Phone      *string
	Sex        *string
	IDNumber   *string
	Status     *int
	UpdateTime time.Time
	UpdateUser int64
}

type EmployeePageQuery struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Name     string `json:"name,omitempty"`
}

type PageResult struct {
	Total   int64      `json:"total"`
	Records []Employee `json:"records"`
}
