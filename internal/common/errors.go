// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage failure")

	// Category errors.
	ErrDuplicateName = errors.New("category name already exists")
	ErrCategoryInUse = errors.New("category is still used by transactions")

	// Input and policy errors.
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Explain maps a domain error onto the message shown to the user.
// Errors outside the taxonomy are reported as a generic storage failure.
func Explain(err error) error {
	if err == nil {
		return nil
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return err
	}

	switch {
	case errors.Is(err, ErrDuplicateName):
		return NewUserError("a category with that name already exists", err)
	case errors.Is(err, ErrCategoryInUse):
		return NewUserError("the category is still used by transactions", err)
	case errors.Is(err, ErrInsufficientBalance):
		return NewUserError("not enough balance for this expense", err)
	case errors.Is(err, ErrInvalidInput):
		return NewUserError("invalid input", err)
	case errors.Is(err, ErrNotFound):
		return NewUserError("not found", err)
	case errors.Is(err, ErrInvalidConfig):
		return NewUserError("configuration problem", err)
	default:
		return NewUserError("failed to load data", err)
	}
}
