package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/model"
	"github.com/theirongolddev/julmat/internal/store"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Families: []string{"Julbord", "Dessert"},
		Items: []model.Item{
			{Family: "Julbord", Category: "Fisk", Name: "Sill"},
			{Family: "Julbord", Category: "Kött", Name: "Julskinka"},
			{Family: "Dessert", Category: "Kall", Name: "Ostkaka"},
		},
	}
}

const sillID = "julbord__fisk__sill"

func newTestService(t *testing.T, cfg Config) (*Service, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryBackend(), zerolog.Nop())
	svc := New(cfg, testCatalog(), st, nil, prometheus.NewRegistry(), zerolog.Nop())
	return svc, st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	rec := do(t, svc.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestItemsFilters(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	h := svc.Handler()

	rec := do(t, h, http.MethodGet, "/v1/items?family=Julbord", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var v checklist.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	require.Len(t, v.Sections, 1)
	assert.Equal(t, "Julbord", v.Sections[0].Family)
	assert.Equal(t, 2, v.Visible)
	assert.Equal(t, 3, v.Totals.Total, "totals cover the full list")

	rec = do(t, h, http.MethodGet, "/v1/items?q=ostkaka", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, 1, v.Visible)

	rec = do(t, h, http.MethodGet, "/v1/items?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/items?family=Frukost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleAndStats(t *testing.T) {
	svc, st := newTestService(t, Config{})
	h := svc.Handler()

	rec := do(t, h, http.MethodPost, "/v1/toggle", `{"id":"`+sillID+`","field":"bought","value":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, st.Entry(sillID).Bought)

	// No value flips.
	rec = do(t, h, http.MethodPost, "/v1/toggle", `{"id":"`+sillID+`","field":"cooked"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, st.Entry(sillID).Done())

	rec = do(t, h, http.MethodGet, "/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, model.Totals{Total: 3, Done: 1}, stats.Totals)
	assert.Equal(t, 33, stats.Percent)
	require.Len(t, stats.Families, 2)
	assert.Equal(t, 1, stats.Families[0].Done)
}

func TestToggleRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	h := svc.Handler()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/toggle", `{"id":"`+sillID+`","field":"eaten"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/v1/toggle", `{"id":"nope","field":"bought"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/toggle", `not json`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/v1/toggle", "").Code)
}

func TestToggleNormalizesID(t *testing.T) {
	svc, st := newTestService(t, Config{})
	h := svc.Handler()

	rec := do(t, h, http.MethodPost, "/v1/toggle", `{"id":"  Julbord__FISK__Sill ","field":"bought","value":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp toggleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sillID, resp.ID)
	assert.True(t, st.Entry(sillID).Bought)
	assert.Len(t, st.Status(), 1, "no entry stored under the mixed-case key")
}

func TestReadOnlyRefusesMutations(t *testing.T) {
	svc, st := newTestService(t, Config{ReadOnly: true})
	h := svc.Handler()

	for _, path := range []string{"/v1/toggle", "/v1/import", "/v1/reset"} {
		rec := do(t, h, http.MethodPost, path, `{"id":"`+sillID+`","field":"bought"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
	assert.Empty(t, st.Status())

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/export", "").Code)
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, st := newTestService(t, Config{})
	h := svc.Handler()
	ctx := context.Background()

	_, err := st.Toggle(ctx, sillID, model.FieldBought, true)
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/v1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "julmat-status.json")
	exported := rec.Body.String()

	require.NoError(t, st.Reset(ctx))
	assert.Empty(t, st.Status())

	rec = do(t, h, http.MethodPost, "/v1/import", exported)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.Entry{Bought: true}, st.Entry(sillID))
}

func TestImportRejectsMalformed(t *testing.T) {
	svc, st := newTestService(t, Config{})
	h := svc.Handler()

	_, err := st.Toggle(context.Background(), sillID, model.FieldCooked, true)
	require.NoError(t, err)

	for _, body := range []string{`{"status":[]}`, `{"foo":1}`, `garbage`} {
		rec := do(t, h, http.MethodPost, "/v1/import", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "import failed")
	}
	assert.True(t, st.Entry(sillID).Cooked, "failed import leaves status untouched")
}

func TestResetClearsStatusAndRecordsEvents(t *testing.T) {
	svc, st := newTestService(t, Config{})
	h := svc.Handler()

	do(t, h, http.MethodPost, "/v1/toggle", `{"id":"`+sillID+`","field":"bought","value":true}`)
	rec := do(t, h, http.MethodPost, "/v1/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, st.Status())

	rec = do(t, h, http.MethodGet, "/v1/events", "")
	var events []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "toggle", events[0].Type)
	assert.Equal(t, "reset", events[1].Type)
	assert.Equal(t, 0, events[1].Totals.Done)

	rec = do(t, h, http.MethodGet, "/v1/events?since=1", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "reset", events[0].Type)
}

func TestEventsRingBuffer(t *testing.T) {
	svc, _ := newTestService(t, Config{EventsBuffer: 3})
	for i := 0; i < 5; i++ {
		svc.publishEvent(Event{Type: "snapshot"})
	}
	events := svc.recentEvents()
	require.Len(t, events, 3)
	assert.Equal(t, int64(3), events[0].ID)
	assert.Equal(t, int64(5), events[2].ID)
}

func TestRateLimitOnMutations(t *testing.T) {
	svc, _ := newTestService(t, Config{RateLimitRPS: 0.001, RateBurst: 1})
	h := svc.Handler()

	body := `{"id":"` + sillID + `","field":"bought"}`
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/toggle", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodPost, "/v1/toggle", body).Code)

	// Reads are never limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/stats", "").Code)
}

func TestMetricsExposed(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	h := svc.Handler()

	do(t, h, http.MethodPost, "/v1/toggle", `{"id":"`+sillID+`","field":"bought","value":true}`)
	do(t, h, http.MethodPost, "/v1/toggle", `{"id":"`+sillID+`","field":"cooked","value":true}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `julmat_toggles_total{field="bought"} 1`)
	assert.Contains(t, body, "julmat_items_done 1")
	assert.Contains(t, body, "julmat_items 3")
	assert.Contains(t, body, `julmat_http_requests_total{code="200",endpoint="/v1/toggle"} 2`)
}

func TestMetricsLabelUnroutedPathsAsOther(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	h := svc.Handler()

	for _, path := range []string{"/nope", "/v1/nope", "/wp-admin/x.php"} {
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, path, "").Code, path)
	}

	body := do(t, h, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, body, `julmat_http_requests_total{code="404",endpoint="other"} 3`)
	assert.NotContains(t, body, `endpoint="/nope"`)
	assert.NotContains(t, body, `endpoint="/wp-admin/x.php"`)
}

func TestStreamSendsSnapshotThenEvents(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, "event: snapshot", readEventLine(t, reader))

	// The subscriber is registered before the snapshot is written.
	svc.publishEvent(Event{Type: "reset"})
	assert.Equal(t, "event: reset", readEventLine(t, reader))
}

func readEventLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			t.Fatal("stream closed")
		}
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "event:") {
			return line
		}
	}
}
