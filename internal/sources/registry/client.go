// Package registry provides the energy-certificate registry source: fresh
// certificate filings are the strongest sale-intent signal the engine has.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"prospector_backend/platform/logger"

	"golang.org/x/time/rate"
)

// Client is the HTTP client for the certificate registry API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewClient creates a registry API client. ratePerSec bounds outbound calls
// so zone fan-out cannot hammer the public API.
func NewClient(baseURL, apiKey string, ratePerSec float64, log *logger.Logger) *Client {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), 1),
		log:        log,
	}
}

// apiCertificate is the raw registry response record.
type apiCertificate struct {
	CertificateID string     `json:"certificate_id"`
	Address       string     `json:"address"`
	FloorAreaSqm  float64    `json:"floor_area_sqm"`
	BuildingType  string     `json:"building_type"`
	EnergyClass   string     `json:"energy_class"`
	IssuedAt      *time.Time `json:"issued_at"`
}

// CertificatesByZone fetches recent certificate filings for one zone, keeping
// only those with at least minAreaSqm of floor area.
func (c *Client) CertificatesByZone(ctx context.Context, zoneID string, minAreaSqm float64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("zone", zoneID)
	if minAreaSqm > 0 {
		params.Set("min_area", fmt.Sprintf("%.0f", minAreaSqm))
	}

	reqURL := fmt.Sprintf("%s/api/v1/certificates?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("registry request failed", "error", err, "zone", zoneID)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to decode
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("unauthorized: invalid API key")
	case http.StatusNotFound:
		// No filings for this zone - not an error
		return []byte("[]"), nil
	default:
		return nil, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return raw, nil
}

// decodeCertificates parses a raw payload as returned by CertificatesByZone.
func decodeCertificates(payload []byte) ([]apiCertificate, error) {
	var certs []apiCertificate
	if err := json.Unmarshal(payload, &certs); err != nil {
		return nil, fmt.Errorf("decode certificates: %w", err)
	}
	return certs, nil
}
