// Package errs provides standardized error types for the buyback service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type carrying error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// The sentinels double as the HTTP status taxonomy at the request boundary:
// ErrValueIsInvalid/ErrValueIsRequired map to 400, ErrObjectNotFound to 404,
// ErrConflict to 409 and ErrUpstreamFailure to 502.
package errs
