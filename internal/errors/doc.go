// Package errors provides structured errors for the cyber pit.
//
// Errors carry a code, a user facing message, an optional cause and
// metadata:
//
//	err := errors.NotFound("account not found").
//	    WithMeta("username", name)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load account")
//	}
//
// # Layers
//
// Entities return Misconfigured errors for catalog defects (unknown
// weapon, unknown build). These are fatal and the host should end the
// session.
//
// Repositories return NotFound and AlreadyExists and wrap storage
// failures as Internal.
//
// Orchestrators and services validate input (InvalidArgument), check
// preconditions such as balance (FailedPrecondition) and wrap
// repository errors with business context.
//
// The console decides what to do with an error by its code: anything
// for which Code.Fatal is false is printed and re-prompted.
package errors
