package sheet

import "errors"

// Error taxonomy shared by the engines, the store backends, and the
// service layer. Callers match with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrCorrupt       = errors.New("corrupt record")
	ErrInvalidInput  = errors.New("invalid input")
	ErrIO            = errors.New("io failure")
)
