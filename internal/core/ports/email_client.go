package ports

import (
	"context"

	"tradein/internal/core/domain/model/order"
)

// EmailMessage is a fully rendered lifecycle email ready for the provider.
type EmailMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// EmailClient delivers lifecycle emails through the email provider. A nil
// error means the provider acknowledged the message; only then may the
// per-order sent marker be persisted.
type EmailClient interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// TemplateRenderer renders a notification kind plus substitution values into
// a subject and HTML body. The core never constructs HTML itself; it only
// supplies the values.
type TemplateRenderer interface {
	Render(kind order.NotificationKind, values map[string]string) (subject string, html string, err error)
}
