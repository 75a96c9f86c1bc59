package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/ports"
)

// autoRequoteActor is the initiator recorded when the timer closes an offer.
const autoRequoteActor = "system"

// AutoRequoteJob periodically closes revised offers whose negotiation window
// expired, completing those orders at the reduced payout. The grace period
// delays enforcement past the exact deadline so a customer clicking at the
// last minute is not raced by the timer.
type AutoRequoteJob struct {
	handler  commands.FinalizeAutoRequoteCommandHandler
	orders   ports.OrderRepository
	schedule string
	grace    time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoRequoteJob creates the scheduled auto-requote enforcement.
func NewAutoRequoteJob(
	handler commands.FinalizeAutoRequoteCommandHandler,
	orders ports.OrderRepository,
	schedule string,
	grace time.Duration,
	logger *slog.Logger,
) *AutoRequoteJob {
	return &AutoRequoteJob{
		handler:  handler,
		orders:   orders,
		schedule: schedule,
		grace:    grace,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_requote_job"),
	}
}

// Start begins the auto-requote job on its configured schedule.
func (j *AutoRequoteJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-requote job started",
		"schedule", j.schedule, "grace", j.grace.String())
	return nil
}

// Stop stops the auto-requote job.
func (j *AutoRequoteJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-requote job stopped")
}

func (j *AutoRequoteJob) run() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-j.grace)

	due, err := j.orders.GetReOfferExpiredBefore(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-requote sweep failed to list orders", "error", err)
		return
	}

	for _, candidate := range due {
		cmd, err := commands.NewFinalizeAutoRequoteCommand(candidate.Number(), autoRequoteActor, false)
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-requote command rejected",
				"order", candidate.Number().String(), "error", err)
			continue
		}

		finalized, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			// A concurrent customer decision wins the race; that is the
			// point of the conflict check, not a failure.
			if commands.IsConflict(err) {
				j.logger.DebugContext(ctx, "Auto-requote skipped, order already resolved",
					"order", candidate.Number().String())
				continue
			}
			j.logger.ErrorContext(ctx, "Auto-requote failed",
				"order", candidate.Number().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Auto-requote applied",
			"order", finalized.Number().String(),
			"reducedTo", finalized.FinalPayoutAmount())
	}
}
