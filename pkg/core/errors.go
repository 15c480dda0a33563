package core

import (
	"errors"
	"fmt"
)

// Common errors. Every failure surfaced by the core wraps one of these,
// so callers can branch with errors.Is regardless of the backend in use.
var (
	ErrNotFound   = errors.New("document not found")
	ErrConflict   = errors.New("document already exists")
	ErrStorage    = errors.New("storage failure")
	ErrValidation = errors.New("invalid identifier")
)

// TemplateNotFoundError reports a template referenced during instruction
// compilation that does not exist. It refines ErrNotFound so existing
// errors.Is checks keep working.
type TemplateNotFoundError struct {
	ID string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template (%s) not found in backend", e.ID)
}

func (e *TemplateNotFoundError) Unwrap() error { return ErrNotFound }
