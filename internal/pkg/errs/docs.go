// Package errs provides standardized error types for the marketplace core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying error details and an optional Cause
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The taxonomy mirrors how failures are surfaced to callers: not-found,
// invalid/required/out-of-range values, conflicts with concurrent changes,
// forbidden actors, business-rule violations, and transient infrastructure
// failures that are safe to retry.
package errs
