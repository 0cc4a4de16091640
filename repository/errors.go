package repository

import "errors"

var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey means a unique constraint (email, cnic) was violated.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidStatus means the status value is outside the stored enum.
	ErrInvalidStatus = errors.New("invalid status value")
)
