package errs

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrIllegalTransition    = errors.New("illegal transition")
	ErrConsistencyViolation = errors.New("consistency violation")
	ErrVersionConflict      = errors.New("version conflict")
	ErrLockTimeout          = errors.New("lock timeout")
)

// IllegalTransitionError reports a (from, to) pair that is not an edge of the
// named state machine.
type IllegalTransitionError struct {
	Machine string
	From    string
	To      string
}

func NewIllegalTransitionError(machine, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{Machine: machine, From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s %s -> %s", ErrIllegalTransition, e.Machine, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// ConsistencyViolationError reports the first cross-machine rule that a
// proposed aggregate state breaks.
type ConsistencyViolationError struct {
	Rule   string
	Reason string
}

func NewConsistencyViolationError(rule, reason string) *ConsistencyViolationError {
	return &ConsistencyViolationError{Rule: rule, Reason: reason}
}

func (e *ConsistencyViolationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConsistencyViolation, e.Rule, e.Reason)
}

func (e *ConsistencyViolationError) Unwrap() error {
	return ErrConsistencyViolation
}

// VersionConflictError reports that the stored aggregate moved past the
// version the caller observed.
type VersionConflictError struct {
	AggregateID any
	Expected    int64
	Actual      int64
}

func NewVersionConflictError(aggregateID any, expected, actual int64) *VersionConflictError {
	return &VersionConflictError{AggregateID: aggregateID, Expected: expected, Actual: actual}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: aggregate %v expected version %d, actual %d",
		ErrVersionConflict, e.AggregateID, e.Expected, e.Actual)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// LockTimeoutError reports that the per-aggregate lock was not acquired in time.
type LockTimeoutError struct {
	Key     string
	Timeout time.Duration
}

func NewLockTimeoutError(key string, timeout time.Duration) *LockTimeoutError {
	return &LockTimeoutError{Key: key, Timeout: timeout}
}

func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("%s: key %s not acquired within %s", ErrLockTimeout, e.Key, e.Timeout)
}

func (e *LockTimeoutError) Unwrap() error {
	return ErrLockTimeout
}

// IsRetryable reports whether the caller may retry the same request unchanged.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrLockTimeout)
}
