package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmptyUpdate      = errors.New("update has no fields")
)

// DuplicateKeyError reports a unique constraint violation on a single column.
type DuplicateKeyError struct {
	Table      string
	Constraint string
	Field      string
	Value      string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s.%s value %q (%s)", e.Table, e.Field, e.Value, e.Constraint)
}
