// Package apperr defines the error kinds returned by the rule layer.
//
// Every typed error matches both its kind sentinel (ErrValidation, ErrNotFound,
// ErrConflict, ErrDependency) and its reason sentinel through errors.Is, so callers
// can branch on either level of detail.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindPersistence covers every error not otherwise classified.
	KindPersistence Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDependency:
		return "dependency"
	default:
		return "persistence"
	}
}

// Kind sentinels.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrDependency = errors.New("dependents exist")
)

// Reasons.
var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrAmountPrecision        = errors.New("amount must have at most 4 decimal places")
	ErrNegativeProgress       = errors.New("progress must not be negative")
	ErrEmptyName              = errors.New("name is required")
	ErrInvalidName            = errors.New("name must be between 3 and 255 characters")
	ErrInvalidPeriod          = errors.New("month must be 1-12 and year 2000-2100")
	ErrInvalidTransactionType = errors.New("transaction type must be INCOME or EXPENSE")
	ErrInvalidFrequency       = errors.New("frequency must be DAILY, WEEKLY, MONTHLY or ANNUALLY")
	ErrInvalidDateRange       = errors.New("end date must not be before start date")
	ErrInvalidEmail           = errors.New("email must be a valid address")
	ErrInvalidPassword        = errors.New("password must be between 8 and 32 characters and at most 72 bytes")
	ErrInvalidReference       = errors.New("referenced entity does not belong to the parent")

	ErrDuplicateName   = errors.New("name already in use")
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrDuplicateBudget = errors.New("budget already exists for this category and period")

	ErrHasDependents = errors.New("entity still has dependents")
)

// ValidationError reports a business rule violation on a single field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Invalid builds a ValidationError.
func Invalid(field string, reason error) error {
	return &ValidationError{Field: field, Err: reason}
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound builds a NotFoundError. id is formatted with %v.
func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Entity string
	Field  string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, e.Err)
}

func (e *ConflictError) Unwrap() []error {
	return []error{ErrConflict, e.Err}
}

// Conflict builds a ConflictError.
func Conflict(entity, field string, reason error) error {
	return &ConflictError{Entity: entity, Field: field, Err: reason}
}

// DependencyError reports a delete blocked by existing dependents.
type DependencyError struct {
	Entity    string
	ID        string
	Dependent string
	Count     int64
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s %s has %d %s", e.Entity, e.ID, e.Count, e.Dependent)
}

func (e *DependencyError) Unwrap() []error {
	return []error{ErrDependency, ErrHasDependents}
}

// KindOf classifies err. Nil and unknown errors are KindPersistence.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrDependency):
		return KindDependency
	default:
		return KindPersistence
	}
}
