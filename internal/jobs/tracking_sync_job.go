package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/core/ports"
)

// TrackingSyncJob periodically refreshes carrier tracking for every order
// with an active shipment leg. Each order syncs both legs independently; a
// failure on one order is logged and the sweep continues.
type TrackingSyncJob struct {
	handler  commands.SyncTrackingCommandHandler
	orders   ports.OrderRepository
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTrackingSyncJob creates the scheduled tracking refresh. The repository
// must read from the connection pool, not a transaction; each per-order sync
// opens its own transaction inside the handler.
func NewTrackingSyncJob(
	handler commands.SyncTrackingCommandHandler,
	orders ports.OrderRepository,
	schedule string,
	logger *slog.Logger,
) *TrackingSyncJob {
	return &TrackingSyncJob{
		handler:  handler,
		orders:   orders,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "tracking_sync_job"),
	}
}

// Start begins the tracking sync job on its configured schedule.
func (j *TrackingSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking sync job started", "schedule", j.schedule)
	return nil
}

// Stop stops the tracking sync job.
func (j *TrackingSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking sync job stopped")
}

func (j *TrackingSyncJob) run() {
	ctx := context.Background()

	candidates, err := j.orders.GetAllInTransit(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking sync sweep failed to list orders", "error", err)
		return
	}

	for _, candidate := range candidates {
		for _, direction := range []order.Direction{order.DirectionOutbound, order.DirectionInbound} {
			j.syncLeg(ctx, candidate, direction)
		}
	}
}

func (j *TrackingSyncJob) syncLeg(ctx context.Context, candidate *order.Order, direction order.Direction) {
	cmd, err := commands.NewSyncTrackingCommand(candidate.Number(), direction)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking sync command rejected",
			"order", candidate.Number().String(), "direction", string(direction), "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking sync failed",
			"order", candidate.Number().String(), "direction", string(direction), "error", err)
		return
	}

	if result.Promoted {
		j.logger.InfoContext(ctx, "Order promoted from tracking",
			"order", candidate.Number().String(),
			"direction", string(direction),
			"status", result.Order.Status().String())
	}
}
