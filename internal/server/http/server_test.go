package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/NeilDarach/msg-q/internal/config"
	"github.com/NeilDarach/msg-q/internal/runtime"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T) (http.Handler, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	rt, err := runtime.Open(runtime.Options{Config: cfgpkg.Default(), Clock: clk})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })
	return New(rt).Handler(), clk
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	assert.Equal(t, rec.Code, env.StatusCode, "envelope status must mirror the HTTP status")
	return rec, env
}

func createMessage(t *testing.T, h http.Handler, queueName, content string) string {
	t.Helper()
	rec, env := doRequest(t, h, http.MethodPost, "/api/messages/"+queueName, map[string]any{"content": content})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.ID)
	return data.ID
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)
	rec, env := doRequest(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ok", data["status"])
}

func TestCreateAndTakeRoundTrip(t *testing.T) {
	h, _ := newTestHandler(t)
	id := createMessage(t, h, "orders", "hello world")

	rec, env := doRequest(t, h, http.MethodGet, "/api/messages/orders?action=take", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var msg struct {
		ID       string `json:"id"`
		Content  string `json:"content"`
		Position uint64 `json:"position"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, "hello world", msg.Content)
	assert.Equal(t, uint64(1), msg.Position)

	// the queue is now empty
	rec, _ = doRequest(t, h, http.MethodGet, "/api/messages/orders?action=take", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPeekDoesNotConsume(t *testing.T) {
	h, _ := newTestHandler(t)
	id := createMessage(t, h, "orders", "stay")

	for i := 0; i < 2; i++ {
		rec, env := doRequest(t, h, http.MethodGet, "/api/messages/orders?action=peek", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var msg struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &msg))
		assert.Equal(t, id, msg.ID)
	}
}

func TestLeaseAckFlow(t *testing.T) {
	h, clk := newTestHandler(t)
	id := createMessage(t, h, "jobs", "work")

	rec, env := doRequest(t, h, http.MethodGet, "/api/messages/jobs?action=lease&lease_seconds=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var leased struct {
		ID         string `json:"id"`
		LeaseUntil string `json:"lease_until"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &leased))
	assert.Equal(t, id, leased.ID)
	deadline, err := time.Parse(time.RFC3339Nano, leased.LeaseUntil)
	require.NoError(t, err)
	assert.True(t, deadline.Equal(clk.Now().Add(30*time.Second)))

	// leased messages are invisible to take
	rec, _ = doRequest(t, h, http.MethodGet, "/api/messages/jobs?action=take", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/api/messages/jobs?action=ack&id="+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/api/messages/jobs?action=peek&id="+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeaseLapsesOverHTTP(t *testing.T) {
	h, clk := newTestHandler(t)
	id := createMessage(t, h, "jobs", "work")

	rec, _ := doRequest(t, h, http.MethodGet, "/api/messages/jobs?action=lease&lease_seconds=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/api/messages/jobs?action=lease&lease_seconds=10", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	clk.Advance(15 * time.Second)
	rec, env := doRequest(t, h, http.MethodGet, "/api/messages/jobs?action=peek&id="+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, id, msg.ID)
}

func TestValidationErrorsMapTo422(t *testing.T) {
	h, _ := newTestHandler(t)
	createMessage(t, h, "orders", "x")

	cases := []string{
		"/api/messages/orders",                             // no action
		"/api/messages/orders?action=borrow",               // unknown action
		"/api/messages/orders?action=lease",                // lease without seconds
		"/api/messages/orders?action=ack",                  // ack without id
		"/api/messages/orders?action=take&id=nope",         // malformed uuid
		"/api/messages/orders?action=peek&lease_seconds=5", // forbidden parameter
	}
	for _, target := range cases {
		rec, env := doRequest(t, h, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, target)

		var data struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.Message, target)
	}
}

func TestUnknownQueueMapsTo404(t *testing.T) {
	h, _ := newTestHandler(t)
	rec, _ := doRequest(t, h, http.MethodGet, "/api/messages/ghost?action=take", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/api/summary?queue_name=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateWithCorrelationAndExpiry(t *testing.T) {
	h, clk := newTestHandler(t)
	cid := "7f1e9ad0-8a6e-4f5b-9dc6-0d4c7d9e2b11"
	rec, env := doRequest(t, h, http.MethodPost, "/api/messages/orders", map[string]any{
		"content":        "fleeting",
		"correlation_id": cid,
		"expiry_seconds": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = doRequest(t, h, http.MethodGet, "/api/messages/orders?action=peek&correlation_id="+cid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg struct {
		ID            string `json:"id"`
		CorrelationID string `json:"correlation_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, created.ID, msg.ID)
	assert.Equal(t, cid, msg.CorrelationID)

	clk.Advance(5 * time.Second)
	rec, _ = doRequest(t, h, http.MethodGet, "/api/messages/orders?action=peek", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRejectsBadCorrelationID(t *testing.T) {
	h, _ := newTestHandler(t)
	rec, _ := doRequest(t, h, http.MethodPost, "/api/messages/orders", map[string]any{
		"content":        "x",
		"correlation_id": "not-a-uuid",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/messages/orders", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInfoActionReturnsSummary(t *testing.T) {
	h, _ := newTestHandler(t)
	createMessage(t, h, "orders", "a")
	createMessage(t, h, "orders", "b")

	rec, env := doRequest(t, h, http.MethodGet, "/api/messages/orders?action=info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		QueueName string `json:"queue_name"`
		Depth     int    `json:"depth"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "orders", summary.QueueName)
	assert.Equal(t, 2, summary.Depth)
}

func TestListQueuesAndSummaryAll(t *testing.T) {
	h, _ := newTestHandler(t)
	createMessage(t, h, "beta", "1")
	createMessage(t, h, "alpha", "2")

	rec, env := doRequest(t, h, http.MethodGet, "/api/queues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	require.NoError(t, json.Unmarshal(env.Data, &names))
	assert.Equal(t, []string{"alpha", "beta"}, names)

	rec, env = doRequest(t, h, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []struct {
		QueueName string `json:"queue_name"`
		Depth     int    `json:"depth"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "alpha", summaries[0].QueueName)
	assert.Equal(t, 1, summaries[0].Depth)
}

func TestAfterFilterOverHTTP(t *testing.T) {
	h, _ := newTestHandler(t)
	createMessage(t, h, "orders", "m1")
	id2 := createMessage(t, h, "orders", "m2")

	rec, env := doRequest(t, h, http.MethodGet, "/api/messages/orders?action=peek&after=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg struct {
		ID       string `json:"id"`
		Position uint64 `json:"position"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, id2, msg.ID)
	assert.Equal(t, uint64(2), msg.Position)
}

func TestUnknownPathAndMethod(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, _ := doRequest(t, h, http.MethodGet, "/api/messages/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/api/messages/a/b", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, h, http.MethodDelete, "/api/messages/orders", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec, _ = doRequest(t, h, http.MethodPost, "/api/queues", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/queues", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestManyQueuesIndependentPositions(t *testing.T) {
	h, _ := newTestHandler(t)
	for q := 0; q < 3; q++ {
		name := fmt.Sprintf("q%d", q)
		for i := 0; i < 2; i++ {
			createMessage(t, h, name, fmt.Sprintf("m%d", i))
		}
	}
	for q := 0; q < 3; q++ {
		target := fmt.Sprintf("/api/messages/q%d?action=take", q)
		rec, env := doRequest(t, h, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var msg struct {
			Position uint64 `json:"position"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &msg))
		assert.Equal(t, uint64(1), msg.Position)
	}
}
