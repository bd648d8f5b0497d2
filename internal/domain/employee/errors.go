package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeNumExists = errors.New("employee number already belongs to another employee")
)
