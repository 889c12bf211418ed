package attendanceapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-gateway/internal/config"
	"github.com/workpulse/attendance-gateway/internal/domain/attendance"
)

type staticCredential string

func (c staticCredential) Credential(ctx context.Context) (string, error) {
	return string(c), nil
}

func newTestClient(serverURL string) *Client {
	return NewClient(config.AttendanceStoreConfig{
		BaseURL: serverURL,
		Timeout: 2 * time.Second,
	}, staticCredential("test-token"), testTZ)
}

func TestClient_ListRecords_Envelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/employees/emp-1/attendance", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[
			{"id":"rec-1","employee_id":"emp-1","date":"2025-06-15","clock_in":"2025-06-15T09:00:00+07:00","status":"present"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	records, err := client.ListRecords(context.Background(), "emp-1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.True(t, records[0].IsActive())
}

func TestClient_ListRecords_BareArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"record_id":"rec-1","employeeId":"emp-1","attendance_date":"2025-06-15","status":"LATE"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	records, err := client.ListRecords(context.Background(), "emp-1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusLate, records[0].Status)
}

func TestClient_ListRecords_Unauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListRecords(context.Background(), "emp-1")

	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestClient_ListRecords_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListRecords(context.Background(), "emp-1")

	assert.ErrorIs(t, err, attendance.ErrRemoteUnavailable)
}

func TestClient_ListRecords_ConflictSurfacesAsRemote(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListRecords(context.Background(), "emp-1")

	assert.ErrorIs(t, err, attendance.ErrRemoteUnavailable)
}

func TestClient_CreateClockIn(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/employees/emp-1/attendance/clock-in", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"), "mutations carry a request id")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"rec-1","employee_id":"emp-1","date":"2025-06-15","clock_in":"2025-06-15T09:00:00+07:00","latitude":12.9,"longitude":77.6,"location_name":"Office","status":"present"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	record, err := client.CreateClockIn(context.Background(), "emp-1", attendance.ClockInPayload{
		Latitude:     12.9,
		Longitude:    77.6,
		LocationName: "Office",
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)
	require.NotNil(t, record.Latitude)
	assert.Equal(t, 12.9, *record.Latitude)
}

func TestClient_CreateClockIn_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	// No request should reach the store at all.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("store should not be called for invalid payloads")
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateClockIn(context.Background(), "emp-1", attendance.ClockInPayload{
		Latitude:  123.0,
		Longitude: 77.6,
	})

	assert.Error(t, err)
}

func TestClient_CreateClockOut(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/employees/emp-1/attendance/clock-out", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"rec-1","employee_id":"emp-1","date":"2025-06-15","clock_in":"2025-06-15T09:00:00+07:00","clock_out":"2025-06-15T17:30:00+07:00","status":"present"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	record, err := client.CreateClockOut(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.True(t, record.IsCompleted())
	assert.Equal(t, 8.5, record.HoursWorked())
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)

	_, err := client.ListRecords(context.Background(), "emp-1")

	assert.ErrorIs(t, err, attendance.ErrRemoteUnavailable)
}
