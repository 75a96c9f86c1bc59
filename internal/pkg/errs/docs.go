// Package errs provides standardized error types for the trade-in application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error category per expected failure class:
//   - ValueIsRequiredError / ValueIsInvalidError: bad input, returned before any mutation
//   - ObjectNotFoundError: a referenced order or record does not exist
//   - ConflictError: a precondition no longer holds (already-resolved negotiation,
//     duplicate auto-requote, lost optimistic-concurrency race)
//   - UpstreamUnavailableError: transient carrier/email/store failure, retryable
//   - InvariantViolationError: proceeding would leave the primary record and its
//     denormalized copy divergent; the operation aborts before any write
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the category
package errs
