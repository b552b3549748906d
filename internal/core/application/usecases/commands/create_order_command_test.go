package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	items := []order.Item{ramen(t, 2)}

	cmd, err := commands.NewCreateOrderCommand(order.TypeDelivery, customer(), items, "5 Side St", "+15550101", "ring twice")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	checkout := cmd.Checkout()
	assert.Equal(t, order.TypeDelivery, checkout.Type)
	assert.Equal(t, "Grace", checkout.Customer.Name)
	assert.Len(t, checkout.Items, 1)
	assert.Equal(t, "5 Side St", checkout.DeliveryAddress)
	assert.Equal(t, "ring twice", checkout.SpecialInstructions)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(order.TypeUnknown, order.Customer{}, nil, "", "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	err := commands.CreateOrderCommand{}.Validate()

	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
