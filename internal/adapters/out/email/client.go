// Package email implements the EmailClient and TemplateRenderer ports
// against a transactional email provider's HTTP API. A nil error from Send
// means the provider acknowledged the message; the notification guard only
// persists its sent marker after that acknowledgment.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"tradein/internal/core/ports"
	"tradein/internal/pkg/errs"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 2
)

// Client sends lifecycle emails through the provider's message API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an email client for the given provider endpoint.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = defaultMaxRetries
	retryClient.HTTPClient.Timeout = defaultTimeout
	retryClient.Logger = nil

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
	}, nil
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send delivers one rendered message. Returns nil only when the provider
// accepted the message.
func (c *Client) Send(ctx context.Context, msg ports.EmailMessage) error {
	if msg.To == "" {
		return errs.NewValueIsRequiredError("msg.To")
	}

	body, err := json.Marshal(sendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewUpstreamUnavailableErrorWithCause("email", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.NewUpstreamUnavailableErrorWithCause("email",
			fmt.Errorf("message request returned %d", resp.StatusCode))
	}

	return nil
}
