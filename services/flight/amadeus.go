// File: skybook/services/flight/amadeus.go
package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/dialogue"
	"skybook/utils"
)

// AmadeusClient talks to the Amadeus flight-offers API. The OAuth token is
// fetched with the client-credentials grant and cached until shortly before
// expiry.
type AmadeusClient struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewAmadeusClient(apiKey, apiSecret, baseURL string) *AmadeusClient {
	return &AmadeusClient{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// authToken returns a cached token, refreshing it when it is about to expire.
func (c *AmadeusClient) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch auth token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth token request returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = tok.AccessToken
	// Refresh a minute early so an in-flight search never carries a token
	// that expires mid-request.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

type offersResponse struct {
	Data []struct {
		ID                    string `json:"id"`
		NumberOfBookableSeats int    `json:"numberOfBookableSeats"`
		Itineraries           []struct {
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
				Duration    string `json:"duration"`
				Departure   struct {
					At string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					At string `json:"at"`
				} `json:"arrival"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}

// Search queries flight offers for one adult on the given route and date.
// City names are resolved to IATA codes through the gazetteer; already-coded
// input passes through unchanged.
func (c *AmadeusClient) Search(ctx context.Context, origin, destination, date string) ([]models.Offer, error) {
	logger := utils.GetLogger()

	token, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{
		"origin":      {resolveIATA(origin)},
		"destination": {resolveIATA(destination)},
		"date":        {date},
		"adults":      {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/shopping/flight-offers?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight search returned status %d", resp.StatusCode)
	}

	var payload offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode flight offers: %w", err)
	}

	offers := make([]models.Offer, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if len(raw.Itineraries) == 0 || len(raw.Itineraries[0].Segments) == 0 {
			continue
		}
		seg := raw.Itineraries[0].Segments[0]
		price, err := strconv.ParseFloat(raw.Price.Total, 64)
		if err != nil {
			logger.Warn("skipping offer with unparseable price",
				zap.String("offerId", raw.ID), zap.String("price", raw.Price.Total))
			continue
		}
		offers = append(offers, models.Offer{
			ID:             raw.ID,
			Airline:        seg.CarrierCode,
			Origin:         origin,
			Destination:    destination,
			Departure:      seg.Departure.At,
			Arrival:        seg.Arrival.At,
			Duration:       seg.Duration,
			Price:          price,
			SeatsAvailable: raw.NumberOfBookableSeats,
			TravelDate:     date,
		})
	}

	logger.Info("flight search completed",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.String("date", date),
		zap.Int("offers", len(offers)))
	return offers, nil
}

func resolveIATA(city string) string {
	if code := dialogue.CityToIATA(city); code != "" {
		return code
	}
	return strings.ToUpper(city)
}
