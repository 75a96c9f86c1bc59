package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/core/ports"
	"tradein/internal/pkg/errs"
)

// NotificationGuard sends at most one customer email per order and
// notification kind. The sent marker is persisted only after the provider
// accepted the message, so a crash between send and persist can at worst
// produce one duplicate on the next attempt, never a silent drop.
type NotificationGuard struct {
	emails   ports.EmailClient
	renderer ports.TemplateRenderer
	writer   OrderWriter
	from     string
	logger   *slog.Logger
}

func NewNotificationGuard(emails ports.EmailClient, renderer ports.TemplateRenderer,
	writer OrderWriter, from string, logger *slog.Logger) (NotificationGuard, error) {
	if emails == nil {
		return NotificationGuard{}, errs.NewValueIsRequiredError("emails")
	}
	if renderer == nil {
		return NotificationGuard{}, errs.NewValueIsRequiredError("renderer")
	}
	if from == "" {
		return NotificationGuard{}, errs.NewValueIsRequiredError("from")
	}
	if logger == nil {
		return NotificationGuard{}, errs.NewValueIsRequiredError("logger")
	}

	return NotificationGuard{
		emails:   emails,
		renderer: renderer,
		writer:   writer,
		from:     from,
		logger:   logger.With("component", "NotificationGuard"),
	}, nil
}

// Enabled reports whether an email provider is configured. A zero guard is
// a valid no-op: deployments without email credentials skip notifications
// entirely.
func (g NotificationGuard) Enabled() bool {
	return g.emails != nil
}

// Send delivers the notification of the given kind for the order unless a
// sent marker already exists. Failures are logged here; callers treat the
// whole call as best effort and never roll back business state over it.
func (g NotificationGuard) Send(ctx context.Context, o *order.Order,
	kind order.NotificationKind, values map[string]string) error {
	if !g.Enabled() {
		return nil
	}

	err := g.send(ctx, o, kind, values)
	if err != nil {
		g.logger.WarnContext(ctx, "notification not sent",
			"order", o.Number().String(), "kind", string(kind), "error", err)
	}

	return err
}

func (g NotificationGuard) send(ctx context.Context, o *order.Order,
	kind order.NotificationKind, values map[string]string) error {
	if o == nil {
		return errs.NewValueIsRequiredError("o")
	}
	if err := kind.Validate(); err != nil {
		return err
	}

	if _, sent := o.NotifiedAt(kind); sent {
		return nil
	}

	merged := map[string]string{
		"orderNumber": o.Number().String(),
		"deviceModel": o.DeviceModel(),
	}
	for k, v := range values {
		merged[k] = v
	}

	subject, html, err := g.renderer.Render(kind, merged)
	if err != nil {
		return err
	}

	if err := g.emails.Send(ctx, ports.EmailMessage{
		From:    g.from,
		To:      o.CustomerEmail(),
		Subject: subject,
		HTML:    html,
	}); err != nil {
		return errs.NewUpstreamUnavailableErrorWithCause(fmt.Sprintf("email (%s)", kind), err)
	}

	now := time.Now().UTC()
	_, err = g.writer.Apply(ctx, o.Number(), func(fresh *order.Order) error {
		fresh.MarkNotified(kind, now)
		return nil
	})

	return err
}
