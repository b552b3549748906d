package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("ticket must be created via newTicket")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When / Then
		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errNotConstructed)

		// Then
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_returns_default_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type ticket struct {
		code  string
		guard guard.ConstructorGuard
	}

	errTicketNotConstructed := errors.New("ticket must be created via newTicket")

	newTicket := func(code string) (ticket, error) {
		if code == "" {
			return ticket{}, errors.New("code is required")
		}
		return ticket{code: code, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_built_value_is_valid", func(t *testing.T) {
		// When
		tk, err := newTicket("PU-1A2B3C4D")

		// Then
		require.NoError(t, err)
		require.NoError(t, tk.guard.Validate(errTicketNotConstructed))
		assert.Equal(t, "PU-1A2B3C4D", tk.code)
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		// Given
		tk := ticket{code: "PU-1A2B3C4D"}

		// When
		err := tk.guard.Validate(errTicketNotConstructed)

		// Then
		require.ErrorIs(t, err, errTicketNotConstructed)
	})

	t.Run("constructor_rejects_empty_code", func(t *testing.T) {
		// When
		_, err := newTicket("")

		// Then
		require.Error(t, err)
	})
}
