package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

func seedDeclinedOrder(t *testing.T, store *fakeStore) *order.Order {
	t.Helper()

	seeded := seedReOfferedOrder(t, store)
	require.NoError(t, seeded.ResolveReOffer(false, time.Now().UTC()))
	return seeded
}

func newReturnLabelHandler(t *testing.T, store *fakeStore) commands.GenerateReturnLabelCommandHandler {
	t.Helper()

	writer, err := commands.NewOrderWriter(fakeOrderUoWFactory{store: store})
	require.NoError(t, err)

	h, err := commands.NewGenerateReturnLabelCommandHandler(writer)
	require.NoError(t, err)
	return h
}

func TestGenerateReturnLabelCommandHandler_Handle_RecordsLabel(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedDeclinedOrder(t, store)

	h := newReturnLabelHandler(t, store)

	cmd, err := commands.NewGenerateReturnLabelCommand(seeded.Number(), "RL123456", "usps")
	require.NoError(t, err)

	labelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.ReturnLabelGenerated, labelled.Status())
	require.Equal(t, 1, countLogs(labelled, order.LogTypeReturnLabel))
	require.Equal(t, 1, countLogs(labelled, order.LogTypeStatusChanged))

	stored := storedOrder(store, seeded.Number())
	require.Equal(t, order.ReturnLabelGenerated, stored.Status())
}

func TestGenerateReturnLabelCommandHandler_Handle_TerminalOrderConflicts(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedOrder(t, store)
	require.NoError(t, seeded.Cancel("customer request", time.Now().UTC()))

	h := newReturnLabelHandler(t, store)

	cmd, err := commands.NewGenerateReturnLabelCommand(seeded.Number(), "RL123456", "usps")
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Equal(t, order.Cancelled, storedOrder(store, seeded.Number()).Status())
}

func TestGenerateReturnLabelCommand_Validation(t *testing.T) {
	store := newFakeStore()
	seeded := seedOrder(t, store)

	t.Run("tracking number is required", func(t *testing.T) {
		_, err := commands.NewGenerateReturnLabelCommand(seeded.Number(), "  ", "usps")
		require.ErrorIs(t, err, commands.ErrReturnLabelTrackingIsRequired)
	})

	t.Run("carrier code is required", func(t *testing.T) {
		_, err := commands.NewGenerateReturnLabelCommand(seeded.Number(), "RL123456", "")
		require.ErrorIs(t, err, commands.ErrCarrierCodeIsRequired)
	})

	t.Run("unconstructed command is rejected", func(t *testing.T) {
		h := newReturnLabelHandler(t, store)
		_, err := h.Handle(t.Context(), commands.GenerateReturnLabelCommand{})
		require.ErrorIs(t, err, commands.ErrGenerateReturnLabelCommandIsNotConstructed)
	})
}
