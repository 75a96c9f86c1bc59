package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

func seedReOfferedOrder(t *testing.T, store *fakeStore) *order.Order {
	t.Helper()

	seeded := seedReceivedOrder(t, store)
	require.NoError(t, seeded.ProposeReOffer(60.00, []string{"cracked screen"}, "", time.Now().UTC()))
	return seeded
}

func newResolveHandler(t *testing.T, store *fakeStore) commands.ResolveReOfferCommandHandler {
	t.Helper()

	writer, err := commands.NewOrderWriter(fakeOrderUoWFactory{store: store})
	require.NoError(t, err)

	h, err := commands.NewResolveReOfferCommandHandler(writer)
	require.NoError(t, err)
	return h
}

func TestResolveReOfferCommandHandler_Handle_Accept(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedReOfferedOrder(t, store)

	h := newResolveHandler(t, store)

	cmd, err := commands.NewResolveReOfferCommand(seeded.Number(), true)
	require.NoError(t, err)

	merged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.ReOfferedAccepted, merged.Status())
	require.InEpsilon(t, 60.00, merged.FinalPayoutAmount(), 1e-9)
	require.NotNil(t, merged.AcceptedAt())
	require.Equal(t, 1, countLogs(merged, order.LogTypeReOfferResolved))
}

func TestResolveReOfferCommandHandler_Handle_Decline(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedReOfferedOrder(t, store)

	h := newResolveHandler(t, store)

	cmd, err := commands.NewResolveReOfferCommand(seeded.Number(), false)
	require.NoError(t, err)

	merged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.ReOfferedDeclined, merged.Status())
	require.NotNil(t, merged.DeclinedAt())
	require.Zero(t, merged.FinalPayoutAmount())
}

func TestResolveReOfferCommandHandler_Handle_DoubleDecisionConflicts(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedReOfferedOrder(t, store)

	h := newResolveHandler(t, store)

	accept, err := commands.NewResolveReOfferCommand(seeded.Number(), true)
	require.NoError(t, err)
	decline, err := commands.NewResolveReOfferCommand(seeded.Number(), false)
	require.NoError(t, err)

	_, err = h.Handle(ctx, accept)
	require.NoError(t, err)

	// A late decline cannot flip the recorded outcome.
	_, err = h.Handle(ctx, decline)
	require.ErrorIs(t, err, errs.ErrConflict)

	stored := storedOrder(store, seeded.Number())
	require.Equal(t, order.ReOfferedAccepted, stored.Status())
}

func TestResolveReOfferCommandHandler_Handle_NoPendingOffer(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedOrder(t, store)

	h := newResolveHandler(t, store)

	cmd, err := commands.NewResolveReOfferCommand(seeded.Number(), true)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}
