package carrier_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"tradein/internal/adapters/out/carrier"
	"tradein/internal/pkg/errs"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClient_Track_ParsesResponse(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("API-Key"))
		require.Equal(t, "usps", r.URL.Query().Get("carrier_code"))
		require.Equal(t, "OUT1", r.URL.Query().Get("tracking_number"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status_code": "delivered",
			"status_description": "Delivered, In/At Mailbox",
			"carrier_status_code": "01",
			"events": [
				{
					"occurred_at": "2026-08-20T14:03:00Z",
					"description": "Delivered",
					"city_locality": "Austin",
					"state_province": "TX",
					"carrier_status_code": "01"
				}
			]
		}`))
	})

	client, err := carrier.NewClient(server.URL, "test-key")
	require.NoError(t, err)

	snapshot, err := client.Track(t.Context(), "usps", "OUT1")
	require.NoError(t, err)

	require.Equal(t, "delivered", snapshot.StatusCode)
	require.Equal(t, "Delivered, In/At Mailbox", snapshot.StatusDescription)
	require.Len(t, snapshot.Events, 1)
	require.Equal(t, "Austin, TX", snapshot.Events[0].Location)
	require.False(t, snapshot.IsEmpty())
}

func TestClient_Track_UnknownNumberIsEmptySnapshot(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client, err := carrier.NewClient(server.URL, "test-key")
	require.NoError(t, err)

	snapshot, err := client.Track(t.Context(), "usps", "FRESH1")
	require.NoError(t, err)
	require.True(t, snapshot.IsEmpty())
}

func TestClient_Track_ServerErrorIsUpstreamUnavailable(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client, err := carrier.NewClient(server.URL, "test-key")
	require.NoError(t, err)

	_, err = client.Track(t.Context(), "usps", "OUT1")
	require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := carrier.NewClient("", "key")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = carrier.NewClient("https://api.example.com", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
