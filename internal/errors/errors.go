package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a malformed request parameter or payload
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Entity Not Found Errors
var (
	ErrUserNotFound = &NotFoundError{Entity: "user"}
	ErrTeamNotFound = &NotFoundError{Entity: "team"}
)

// Business Logic Errors
var (
	ErrEmptyUpdate        = &ValidationError{Field: "updateData", Message: "at least one field must be provided"}
	ErrInvalidMembers     = &ValidationError{Field: "members", Message: "invalid members format"}
	ErrSearchRequired     = &ValidationError{Field: "search", Message: "search is required"}
	ErrMarkMembersFailed  = errors.New("failed to mark team members unavailable")
	ErrTeamRollbackFailed = errors.New("failed to restore member availability after team creation error")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
