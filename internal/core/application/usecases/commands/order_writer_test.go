package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

func seedOrder(t *testing.T, store *fakeStore) *order.Order {
	t.Helper()

	number, err := kernel.NewOrderNumber("TI", 10001)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(number, kernel.NewUUID(), "jo@example.com",
		"Pixel 8", "SN42", 100.00, false)
	require.NoError(t, err)

	store.put(aggregate)
	return aggregate
}

func TestOrderWriter_Apply_AppendsOneStatusChangedLog(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedOrder(t, store)

	writer, err := commands.NewOrderWriter(fakeOrderUoWFactory{store: store})
	require.NoError(t, err)

	now := time.Now().UTC()
	merged, err := writer.Apply(ctx, seeded.Number(), func(o *order.Order) error {
		return o.MarkKitSent("OUT1", "RET1", "usps", now)
	})
	require.NoError(t, err)

	require.Equal(t, order.KitSent, merged.Status())
	require.Equal(t, 1, countLogs(merged, order.LogTypeStatusChanged))
	require.Equal(t, 1, store.upserts)
	require.Equal(t, 1, store.commits)
	require.Same(t, merged, store.lastUpsert)
}

func TestOrderWriter_Apply_NoStatusLogWhenStatusUnchanged(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedOrder(t, store)
	require.NoError(t, seeded.MarkKitSent("OUT1", "RET1", "usps", time.Now().UTC()))

	writer, err := commands.NewOrderWriter(fakeOrderUoWFactory{store: store})
	require.NoError(t, err)

	logsBefore := countLogs(seeded, order.LogTypeStatusChanged)

	merged, err := writer.Apply(ctx, seeded.Number(), func(o *order.Order) error {
		_, err := o.RecordTracking(order.DirectionOutbound, order.TrackingUpdate{
			StatusCode: order.TrackingInTransit,
		}, time.Now().UTC())
		return err
	})
	require.NoError(t, err)

	require.Equal(t, logsBefore, countLogs(merged, order.LogTypeStatusChanged))
	require.Equal(t, 1, store.upserts)
}

func TestOrderWriter_Apply_MutationErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedOrder(t, store)

	writer, err := commands.NewOrderWriter(fakeOrderUoWFactory{store: store})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = writer.Apply(ctx, seeded.Number(), func(_ *order.Order) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.Zero(t, store.commits)
	require.Zero(t, store.upserts)
	require.Equal(t, 1, store.rollbacks)
}

func TestOrderWriter_Apply_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()

	writer, err := commands.NewOrderWriter(fakeOrderUoWFactory{store: store})
	require.NoError(t, err)

	number, err := kernel.NewOrderNumber("TI", 99999)
	require.NoError(t, err)

	_, err = writer.Apply(ctx, number, func(_ *order.Order) error { return nil })
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderWriter_Apply_VersionConflictSurfaces(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	seeded := seedOrder(t, store)
	store.updateErrs = []error{errs.NewConflictError("order version changed")}

	writer, err := commands.NewOrderWriter(fakeOrderUoWFactory{store: store})
	require.NoError(t, err)

	_, err = writer.Apply(ctx, seeded.Number(), func(o *order.Order) error {
		return o.MarkKitSent("OUT1", "RET1", "usps", time.Now().UTC())
	})
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Zero(t, store.commits)
	require.Zero(t, store.upserts)
}
