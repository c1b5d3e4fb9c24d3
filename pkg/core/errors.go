package core

import "errors"

// Common errors.
var (
	ErrReadOnly      = errors.New("repository is in read-only mode")
	ErrNotFound      = errors.New("record not found")
	ErrTitleRequired = errors.New("record title cannot be empty")
)
