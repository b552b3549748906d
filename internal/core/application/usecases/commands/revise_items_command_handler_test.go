package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviseItemsCommand_RequiresItems(t *testing.T) {
	_, err := commands.NewReviseItemsCommand(42, nil)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestReviseItemsCommandHandler_Handle(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 42, order.TypePickup))
	f.pay(42, order.MethodCreditCard)
	h := commands.NewReviseItemsCommandHandler(storeFactory{f.store}, keylock.New(time.Second),
		services.NewTransitionEngine(services.NewConsistencyRules()), fixedClock)

	t.Run("pending_order_is_repriced", func(t *testing.T) {
		cmd, err := commands.NewReviseItemsCommand(42, []order.Item{ramen(t, 3)})
		require.NoError(t, err)

		updated, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "36.00", updated.Total().String())
		pay, _ := f.stored(42).Payment()
		assert.Equal(t, "36.00", pay.Amount.String())
	})

	t.Run("confirmed_order_is_locked", func(t *testing.T) {
		f.mustApply(42, [2]string{"ORDER", "CONFIRMED"})
		cmd, err := commands.NewReviseItemsCommand(42, []order.Item{ramen(t, 1)})
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConsistencyViolation)
		assert.Equal(t, "36.00", f.stored(42).Total().String())
	})
}
