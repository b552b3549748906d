// Package errs provides the typed errors shared by the fulfillment coordinator.
//
// Every error type follows one pattern:
//   - a sentinel variable (ErrObjectNotFound, ErrIllegalTransition, ...)
//   - a struct carrying the details
//   - NewX constructors, with a WithCause variant where a cause makes sense
//   - Unwrap returning the sentinel, so callers classify with errors.Is
//
// Value errors (required, invalid, out of range) describe bad input. The
// transition errors describe why a state change was refused:
//   - IllegalTransitionError: the edge is not in the machine's graph
//   - ConsistencyViolationError: the resulting aggregate breaks a cross-machine rule
//   - VersionConflictError: a concurrent writer committed first
//   - LockTimeoutError: the per-order lock was not acquired in time
//
// Only the last two are retryable, see IsRetryable.
package errs
