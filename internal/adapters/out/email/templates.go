package email

import (
	"fmt"
	"html/template"
	"strings"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// TemplateRenderer renders lifecycle notification kinds into a subject and
// HTML body. Templates live here with the provider adapter; the core only
// supplies substitution values.
type TemplateRenderer struct {
	templates map[order.NotificationKind]notificationTemplate
}

type notificationTemplate struct {
	subject string
	body    *template.Template
}

// NewTemplateRenderer creates a renderer with the built-in template set.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	sources := map[order.NotificationKind]struct {
		subject string
		body    string
	}{
		order.NotificationKitDelivered: {
			subject: "Your trade-in kit for order {{.orderNumber}} has arrived",
			body: `<p>Hi,</p>
<p>The shipping kit for your {{.deviceModel}} trade-in (order {{.orderNumber}})
has been delivered. Pack your device and send it back with the pre-paid
return label inside.</p>`,
		},
		order.NotificationDeviceReceived: {
			subject: "We received your device - order {{.orderNumber}}",
			body: `<p>Hi,</p>
<p>Your {{.deviceModel}} arrived at our warehouse. We will inspect it and
confirm your payout shortly.</p>`,
		},
		order.NotificationReOfferMade: {
			subject: "Action needed: revised offer for order {{.orderNumber}}",
			body: `<p>Hi,</p>
<p>After inspecting your {{.deviceModel}} we have revised our offer to
<strong>${{.newPrice}}</strong> (original quote ${{.estimatedQuote}}).</p>
<p>Please accept or decline within 7 days. If we don't hear from you the
order is closed automatically at a reduced amount.</p>`,
		},
		order.NotificationOrderCompleted: {
			subject: "Your trade-in order {{.orderNumber}} is complete",
			body: `<p>Hi,</p>
<p>Your trade-in of {{.deviceModel}} (order {{.orderNumber}}) is complete.
Your payout of <strong>${{.finalPayout}}</strong> is on its way.</p>`,
		},
		order.NotificationOrderCancelled: {
			subject: "Your trade-in order {{.orderNumber}} was cancelled",
			body: `<p>Hi,</p>
<p>Your trade-in order {{.orderNumber}} for {{.deviceModel}} has been
cancelled{{if .reason}} ({{.reason}}){{end}}.</p>`,
		},
	}

	templates := make(map[order.NotificationKind]notificationTemplate, len(sources))
	for kind, src := range sources {
		parsed, err := template.New(string(kind)).Parse(src.body)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", kind, err)
		}
		templates[kind] = notificationTemplate{subject: src.subject, body: parsed}
	}

	return &TemplateRenderer{templates: templates}, nil
}

// Render produces the subject and HTML body for a notification kind.
func (r *TemplateRenderer) Render(kind order.NotificationKind, values map[string]string) (string, string, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return "", "", errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("no template for notification kind %q", string(kind)))
	}

	subject := tmpl.subject
	for key, value := range values {
		subject = strings.ReplaceAll(subject, "{{."+key+"}}", value)
	}

	var body strings.Builder
	if err := tmpl.body.Execute(&body, values); err != nil {
		return "", "", err
	}

	return subject, body.String(), nil
}
