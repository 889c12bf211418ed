package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/workpulse/attendance-gateway/internal/pkg/validator"
)

// Reading is a single best-effort coordinate fix.
type Reading struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Provider failure reasons. Callers in the attendance domain collapse all of
// them into one location-unavailable error because the UI handles them
// identically.
var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrTimeout             = errors.New("geolocation request timed out")
	ErrPositionUnavailable = errors.New("device position unavailable")
)

// Provider supplies one coordinate reading on demand. A read may block up to
// the provider's configured timeout and must never hang past it.
type Provider interface {
	Locate(ctx context.Context) (Reading, error)
}

type httpProvider struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPProvider builds a Provider backed by a device-location endpoint.
// The timeout bounds a single Locate call end to end.
func NewHTTPProvider(baseURL string, timeout time.Duration) Provider {
	return &httpProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Locate implements Provider.
func (p *httpProvider) Locate(ctx context.Context) (Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/position", nil)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to build position request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Reading{}, ErrTimeout
		}
		return Reading{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Reading{}, ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return Reading{}, fmt.Errorf("%w: unexpected status %d", ErrPositionUnavailable, resp.StatusCode)
	}

	var reading Reading
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return Reading{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}

	if !validator.IsValidCoordinate(reading.Latitude, reading.Longitude) {
		return Reading{}, fmt.Errorf("%w: coordinates out of range", ErrPositionUnavailable)
	}

	return reading, nil
}
