package model

// EmployeeLoginRequest carries no length limits: an over-long username is
// simply an unknown account.
type EmployeeLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EmployeeRequest is the body of create and update calls. Pointer fields
// distinguish "absent" from "empty" so updates stay partial.
type EmployeeRequest struct {
	ID       *int64  `json:"id,omitempty"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=32"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=32"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=11"`
	Sex      *string `json:"sex,omitempty" validate:"omitempty,oneof=0 1"`
	IDNumber *string `json:"idNumber,omitempty" validate:"omitempty,max=18"`
}
