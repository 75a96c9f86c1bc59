// Package carrier implements the CarrierClient port against the shipping
// carrier's tracking HTTP API. Transient failures are retried with backoff by
// the underlying HTTP client; whatever still fails after that surfaces as an
// upstream-unavailable error so callers can distinguish provider trouble
// from their own bugs.
package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"tradein/internal/core/ports"
	"tradein/internal/pkg/errs"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
)

// Client calls the carrier tracking API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a carrier client for the given API endpoint.
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

// trackResponse is the carrier's wire format for one tracked shipment.
type trackResponse struct {
	StatusCode            string     `json:"status_code"`
	StatusDescription     string     `json:"status_description"`
	CarrierStatusCode     string     `json:"carrier_status_code"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	Events                []struct {
		OccurredAt        time.Time `json:"occurred_at"`
		Description       string    `json:"description"`
		CityLocality      string    `json:"city_locality"`
		StateProvince     string    `json:"state_province"`
		CarrierStatusCode string    `json:"carrier_status_code"`
	} `json:"events"`
}

// Track fetches the current tracking snapshot for a shipment. A tracking
// number the carrier does not know yet yields an empty snapshot, not an
// error; freshly purchased labels stay invisible for a while.
func (c *Client) Track(ctx context.Context, carrierCode, trackingNumber string) (ports.TrackingSnapshot, error) {
	if trackingNumber == "" {
		return ports.TrackingSnapshot{}, errs.NewValueIsRequiredError("trackingNumber")
	}

	endpoint := fmt.Sprintf("%s/v1/tracking?carrier_code=%s&tracking_number=%s",
		c.baseURL, url.QueryEscape(carrierCode), url.QueryEscape(trackingNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.TrackingSnapshot{}, err
	}
	req.Header.Set("API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.TrackingSnapshot{}, errs.NewUpstreamUnavailableErrorWithCause("carrier", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.TrackingSnapshot{}, nil
	case resp.StatusCode != http.StatusOK:
		return ports.TrackingSnapshot{}, errs.NewUpstreamUnavailableErrorWithCause("carrier",
			fmt.Errorf("tracking request returned %d", resp.StatusCode))
	}

	var payload trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.TrackingSnapshot{}, errs.NewUpstreamUnavailableErrorWithCause("carrier", err)
	}

	return toSnapshot(payload), nil
}

func toSnapshot(payload trackResponse) ports.TrackingSnapshot {
	events := make([]ports.TrackingSnapshotEvent, 0, len(payload.Events))
	for _, e := range payload.Events {
		location := e.CityLocality
		if e.StateProvince != "" {
			if location != "" {
				location += ", "
			}
			location += e.StateProvince
		}
		events = append(events, ports.TrackingSnapshotEvent{
			OccurredAt:        e.OccurredAt,
			Description:       e.Description,
			Location:          location,
			CarrierStatusCode: e.CarrierStatusCode,
		})
	}

	return ports.TrackingSnapshot{
		StatusCode:            payload.StatusCode,
		StatusDescription:     payload.StatusDescription,
		CarrierStatusCode:     payload.CarrierStatusCode,
		EstimatedDeliveryDate: payload.EstimatedDeliveryDate,
		Events:                events,
	}
}
