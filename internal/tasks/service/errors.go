package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/tasks/pkg/validx"
)

var (
	ErrDuplicateEmail     = errors.New("duplicate_email")
	ErrDuplicateUsername  = errors.New("duplicate_username")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not_found")
	ErrValidation         = errors.New("validation_error")
	ErrInfrastructure     = errors.New("infrastructure_error")
)

// ValidationError lists the fields that were rejected. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Fields validx.Errors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Fields: validx.Errors{{Field: field, Reason: reason}}}
}

// asValidation converts a validx result into a ValidationError.
func asValidation(err error) error {
	var errs validx.Errors
	if errors.As(err, &errs) {
		return &ValidationError{Fields: errs}
	}
	return err
}

// InfrastructureError wraps a storage or backend failure. It matches
// ErrInfrastructure and still unwraps to the underlying error.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

func (e *InfrastructureError) Is(target error) bool { return target == ErrInfrastructure }

// infra wraps err unless it is nil or already one of ours.
func infra(op string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return &InfrastructureError{Op: op, Err: err}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrDuplicateEmail, ErrDuplicateUsername, ErrInvalidCredentials,
		ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrValidation, ErrInfrastructure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
