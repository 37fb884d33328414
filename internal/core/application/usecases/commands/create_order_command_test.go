package commands_test

import (
	"testing"

	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(validDraft("RM001"))
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "RM001", cmd.OrderNumber())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	draft := validDraft("")
	draft.Rolls = nil

	_, err := commands.NewCreateOrderCommand(draft)

	require.ErrorIs(t, err, order.ErrMissingField)
	require.ErrorIs(t, err, order.ErrEmptyRollSet)
}

func TestCreateOrderCommand_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
