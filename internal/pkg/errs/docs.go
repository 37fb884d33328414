// Package errs provides standardized error types for the order tracking service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is shared by the domain model, the repositories and the HTTP adapter.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value breaks a rule
//   - ObjectNotFoundError: a lookup by identifier found nothing
//   - ObjectAlreadyExistsError: a unique attribute collides with a stored object
//   - StorageUnavailableError: the backing store failed
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
