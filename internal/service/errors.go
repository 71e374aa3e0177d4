package service

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrDraftNotFound   = errors.New("draft not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrStorageDisabled = errors.New("object storage is not configured")
)

// CollaboratorError reports a failed call to persistence or object storage.
// Local state is left unchanged when one is returned.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func collaboratorError(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}
