package attendanceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/workpulse/attendance-gateway/internal/config"
	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
)

// CredentialProvider supplies the bearer credential attached to every
// upstream request.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

// Client implements attendance.Store against the remote attendance REST API.
// It never retries: a failed request is surfaced to the caller, who decides
// whether to issue a new attempt.
type Client struct {
	baseURL  string
	client   *http.Client
	creds    CredentialProvider
	timezone *time.Location
}

func NewClient(cfg config.AttendanceStoreConfig, creds CredentialProvider, timezone *time.Location) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		client:   &http.Client{Timeout: cfg.Timeout},
		creds:    creds,
		timezone: timezone,
	}
}

type clockInBody struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"location_name"`
}

// ListRecords implements attendance.Store.
func (c *Client) ListRecords(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	endpoint := fmt.Sprintf("/employees/%s/attendance", url.PathEscape(employeeID))

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var list wireRecordList
	if err := json.Unmarshal(body, &list); err != nil {
		// Some store versions return a bare array instead of an envelope.
		var bare []wireRecord
		if err := json.Unmarshal(body, &bare); err != nil {
			return nil, fmt.Errorf("%w: malformed history payload", attendance.ErrRemoteUnavailable)
		}
		list.Records = bare
	}

	items := list.items()
	records := make([]attendance.Record, 0, len(items))
	for _, w := range items {
		record, err := normalizeRecord(w, c.timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", attendance.ErrRemoteUnavailable, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// CreateClockIn implements attendance.Store.
func (c *Client) CreateClockIn(ctx context.Context, employeeID string, payload attendance.ClockInPayload) (attendance.Record, error) {
	if err := payload.Validate(); err != nil {
		return attendance.Record{}, err
	}

	endpoint := fmt.Sprintf("/employees/%s/attendance/clock-in", url.PathEscape(employeeID))
	reqBody := clockInBody{
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		LocationName: payload.LocationName,
	}

	body, err := c.do(ctx, http.MethodPost, endpoint, reqBody)
	if err != nil {
		return attendance.Record{}, err
	}

	return c.decodeRecord(body)
}

// CreateClockOut implements attendance.Store.
func (c *Client) CreateClockOut(ctx context.Context, employeeID string) (attendance.Record, error) {
	endpoint := fmt.Sprintf("/employees/%s/attendance/clock-out", url.PathEscape(employeeID))

	body, err := c.do(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return attendance.Record{}, err
	}

	return c.decodeRecord(body)
}

func (c *Client) decodeRecord(body []byte) (attendance.Record, error) {
	var envelope struct {
		Data *wireRecord `json:"data"`
	}
	var w wireRecord

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		w = *envelope.Data
	} else if err := json.Unmarshal(body, &w); err != nil {
		return attendance.Record{}, fmt.Errorf("%w: malformed record payload", attendance.ErrRemoteUnavailable)
	}

	record, err := normalizeRecord(w, c.timezone)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("%w: %v", attendance.ErrRemoteUnavailable, err)
	}
	return record, nil
}

// do executes one request against the store and maps transport and status
// failures onto the attendance error taxonomy.
func (c *Client) do(ctx context.Context, method, endpoint string, payload interface{}) ([]byte, error) {
	var reqBody *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build store request: %w", err)
	}

	credential, err := c.creds.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrUnauthorized, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
		// Correlates each mutation attempt in store-side logs.
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, attendance.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, attendance.ErrRecordNotFound
	case resp.StatusCode >= 400:
		// Includes 409 conflicts from concurrent mutations on another
		// device; the uniqueness invariant belongs to the store, so the
		// gateway surfaces them as remote-class failures.
		return nil, fmt.Errorf("%w: store returned status %d", attendance.ErrRemoteUnavailable, resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrRemoteUnavailable, err)
	}

	return buf.Bytes(), nil
}
