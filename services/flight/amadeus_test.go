package flight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybook/models"
)

func newTestServer(t *testing.T, tokenCalls *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		*tokenCalls++
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key", user)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","expires_in":1799}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "DEL", r.URL.Query().Get("origin"))
		assert.Equal(t, "BOM", r.URL.Query().Get("destination"))
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":"OF-1","numberOfBookableSeats":5,
			 "itineraries":[{"segments":[{"carrierCode":"6E","duration":"PT2H10M",
			   "departure":{"at":"2026-09-01T08:00:00"},"arrival":{"at":"2026-09-01T10:10:00"}}]}],
			 "price":{"total":"4500.00"}},
			{"id":"OF-2","numberOfBookableSeats":2,
			 "itineraries":[{"segments":[{"carrierCode":"AI","duration":"PT2H05M",
			   "departure":{"at":"2026-09-01T09:30:00"},"arrival":{"at":"2026-09-01T11:35:00"}}]}],
			 "price":{"total":"not-a-price"}}
		]}`))
	})
	return httptest.NewServer(mux)
}

func TestSearchMapsOffersAndSkipsBadPrices(t *testing.T) {
	var tokenCalls int
	srv := newTestServer(t, &tokenCalls)
	defer srv.Close()

	client := NewAmadeusClient("key", "secret", srv.URL)
	offers, err := client.Search(context.Background(), "Delhi", "Mumbai", "2026-09-01")

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "OF-1", offers[0].ID)
	assert.Equal(t, "6E", offers[0].Airline)
	assert.Equal(t, 4500.0, offers[0].Price)
	assert.Equal(t, 5, offers[0].SeatsAvailable)
	assert.Equal(t, "Delhi", offers[0].Origin)
	assert.Equal(t, "2026-09-01", offers[0].TravelDate)
}

func TestSearchReusesCachedToken(t *testing.T) {
	var tokenCalls int
	srv := newTestServer(t, &tokenCalls)
	defer srv.Close()

	client := NewAmadeusClient("key", "secret", srv.URL)
	ctx := context.Background()

	_, err := client.Search(ctx, "Delhi", "Mumbai", "2026-09-01")
	require.NoError(t, err)
	_, err = client.Search(ctx, "Delhi", "Mumbai", "2026-09-01")
	require.NoError(t, err)

	assert.Equal(t, 1, tokenCalls)
}

func TestSearchErrorOnRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewAmadeusClient("key", "secret", srv.URL)
	_, err := client.Search(context.Background(), "Delhi", "Mumbai", "2026-09-01")

	assert.Error(t, err)
}

func TestFormatOffersEmpty(t *testing.T) {
	assert.Contains(t, FormatOffers(nil), "No flights found")
}

func TestFormatOffersNumbersFromOne(t *testing.T) {
	out := FormatOffers([]models.Offer{
		{ID: "OF-1", Airline: "6E", Departure: "08:00", Arrival: "10:10", Duration: "PT2H10M", Price: 4500, SeatsAvailable: 5},
		{ID: "OF-2", Airline: "AI", Departure: "09:30", Arrival: "11:35", Duration: "PT2H05M", Price: 5200, SeatsAvailable: 2},
	})

	assert.Contains(t, out, "Available Flights (2 options)")
	assert.Contains(t, out, "1. 6E (OF-1)")
	assert.Contains(t, out, "2. AI (OF-2)")
	assert.Contains(t, out, "Reply with the flight number")
}
