// Package fault defines the error taxonomy shared by the installment engine.
// Every failure a caller can act on carries the offending field or condition;
// collaborator failures name the collaborator that failed.
package fault

import (
	"errors"
	"fmt"
)

// Machine-readable condition codes carried by StateError.
const (
	CodePlanNotActive    = "PLAN_NOT_ACTIVE"
	CodeAlreadyPaid      = "ALREADY_PAID"
	CodeCurrencyMismatch = "CURRENCY_MISMATCH"
	CodeEditBelowPaid    = "EDIT_BELOW_PAID"
	CodeOutOfOrder       = "OUT_OF_ORDER"
	CodeVersionConflict  = "VERSION_CONFLICT"
)

// ValidationError reports input of bad shape or range. Field names the
// offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StateError reports an operation that is illegal in the current lifecycle
// state. Code is one of the Code* constants.
type StateError struct {
	Code    string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewState creates a StateError with the given condition code.
func NewState(code, format string, args ...interface{}) *StateError {
	return &StateError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent plan, row, or account.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound creates a NotFoundError for the given resource and identifier.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// DependencyError reports a failed collaborator call. It is surfaced as-is,
// never retried by the engine.
type DependencyError struct {
	Collaborator string
	Err          error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s failed: %v", e.Collaborator, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// NewDependency wraps a collaborator failure.
func NewDependency(collaborator string, err error) *DependencyError {
	return &DependencyError{Collaborator: collaborator, Err: err}
}

// InternalError reports an arithmetic or consistency invariant violation.
// It is never converted into a succeeded-with-wrong-numbers result.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal consistency violation: %s", e.Message)
}

// NewInternal creates an InternalError.
func NewInternal(format string, args ...interface{}) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsState reports whether err is a StateError; when code is non-empty the
// error's code must also match.
func IsState(err error, code string) bool {
	var s *StateError
	if !errors.As(err, &s) {
		return false
	}
	return code == "" || s.Code == code
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

// IsDependency reports whether err is a DependencyError.
func IsDependency(err error) bool {
	var d *DependencyError
	return errors.As(err, &d)
}

// IsInternal reports whether err is an InternalError.
func IsInternal(err error) bool {
	var i *InternalError
	return errors.As(err, &i)
}
