package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID is an immutable identifier value object. Lifecycle events, COD
// transaction references and pickup codes are all derived from it.
//
// The zero value is invalid; use NewUUID or UUIDFromString.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced or urn forms of a UUID.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// ShortCode returns the first n hexadecimal digits of the UUID in upper case,
// without dashes. n is clamped to [1, 32].
//
//	kernel.NewUUID().ShortCode(8) // e.g. "9F3A07C2"
func (u UUID) ShortCode(n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(u.id.String(), "-", ""))
	n = max(1, min(n, len(hex)))
	return hex[:n]
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
