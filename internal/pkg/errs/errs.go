package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is. Each typed error in
// this package unwraps to exactly one of these, which lets transport adapters
// map failures to status codes without inspecting concrete types.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrBusinessRule      = errors.New("business rule violated")
	ErrTransient         = errors.New("transient failure")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError reports that an entity could not be located.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports that a numeric value is outside its bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsOutOfRange, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsOutOfRange, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ConflictError reports that an operation lost to a concurrent or earlier
// change: an assignment already resolved, an order already assigned, a refund
// already issued.
type ConflictError struct {
	Subject string
	Detail  string
	Cause   error
}

func NewConflictError(subject, detail string) *ConflictError {
	return &ConflictError{Subject: subject, Detail: detail}
}

func NewConflictErrorWithCause(subject, detail string, cause error) *ConflictError {
	return &ConflictError{Subject: subject, Detail: detail, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s: %s (cause: %s)", ErrConflict, e.Subject, e.Detail, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrConflict, e.Subject, e.Detail))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ForbiddenError reports that the acting party does not own or control the
// resource it tried to mutate.
type ForbiddenError struct {
	Actor    string
	Resource string
}

func NewForbiddenError(actor, resource string) *ForbiddenError {
	return &ForbiddenError{Actor: actor, Resource: resource}
}

func (e *ForbiddenError) Error() string {
	return sanitize(fmt.Sprintf("%s: actor %s may not act on %s", ErrForbidden, e.Actor, e.Resource))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// BusinessRuleError reports a domain-rule violation detected before any
// mutation: order below minimum, chef not onboarded, item unavailable.
type BusinessRuleError struct {
	Rule  string
	Cause error
}

func NewBusinessRuleError(rule string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule}
}

func NewBusinessRuleErrorWithCause(rule string, cause error) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Cause: cause}
}

func (e *BusinessRuleError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrBusinessRule, e.Rule, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrBusinessRule, e.Rule))
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrBusinessRule
}

// TransientError wraps an infrastructure failure (lock timeout, external call
// failure mid-transaction). Callers may retry the whole operation; nothing was
// committed.
type TransientError struct {
	Op    string
	Cause error
}

func NewTransientError(op string, cause error) *TransientError {
	return &TransientError{Op: op, Cause: cause}
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrTransient, e.Op, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrTransient, e.Op))
}

func (e *TransientError) Unwrap() error {
	return ErrTransient
}
