package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/model"
	"github.com/theirongolddev/julmat/internal/store"
)

const maxImportBytes = 1 << 20

// StatsResponse is served at /v1/stats.
type StatsResponse struct {
	Totals   model.Totals        `json:"totals"`
	Percent  int                 `json:"percent"`
	Families []model.FamilyStats `json:"families"`
}

type toggleRequest struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value *bool  `json:"value"` // nil flips the current flag
}

type toggleResponse struct {
	ID    string      `json:"id"`
	Entry model.Entry `json:"status"`
}

type importResponse struct {
	Entries   int       `json:"entries"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleItems(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	status, err := checklist.ParseStatusFilter(q.Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	family := q.Get("family")
	if family != "" && family != checklist.AllFamilies && !s.cat.HasFamily(family) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown family %q", family))
		return
	}

	f := checklist.Filter{Query: q.Get("q"), Family: family, Category: q.Get("category"), Status: status}
	writeJSON(w, http.StatusOK, checklist.BuildView(s.cat, s.st.Status(), f, s.sorter))
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	status := s.st.Status()
	totals := checklist.GlobalStats(s.cat.Items, status)
	resp := StatsResponse{
		Totals:   totals,
		Percent:  totals.Percent(),
		Families: make([]model.FamilyStats, 0, len(s.cat.Families)),
	}
	for _, fam := range s.cat.Families {
		resp.Families = append(resp.Families, checklist.FamilyStats(s.cat.Items, status, fam))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	field, err := model.ParseField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ID = strings.ToLower(strings.TrimSpace(req.ID))
	if _, ok := s.cat.Lookup(req.ID); !ok {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	var entry model.Entry
	if req.Value == nil {
		entry, err = s.st.Flip(r.Context(), req.ID, field)
	} else {
		entry, err = s.st.Toggle(r.Context(), req.ID, field, *req.Value)
	}
	if err != nil {
		s.log.Error().Err(err).Str("id", req.ID).Msg("toggle failed")
		writeError(w, http.StatusInternalServerError, "could not save status")
		return
	}

	s.metrics.toggles.WithLabelValues(field.String()).Inc()
	s.publishEvent(Event{Type: "toggle", Item: req.ID, Entry: &entry})
	writeJSON(w, http.StatusOK, toggleResponse{ID: req.ID, Entry: entry})
}

func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	data, err := s.st.Export().Marshal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="julmat-status.json"`)
	_, _ = w.Write(data)
}

func (s *Service) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "import failed")
		return
	}

	p, err := s.st.Import(r.Context(), raw)
	if errors.Is(err, store.ErrFormat) {
		writeError(w, http.StatusBadRequest, "import failed")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("import failed")
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	s.publishEvent(Event{Type: "import"})
	writeJSON(w, http.StatusOK, importResponse{Entries: len(p.Status), CreatedAt: p.CreatedAt})
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.st.Reset(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("reset failed")
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	s.publishEvent(Event{Type: "reset"})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	events := s.recentEvents()
	if sinceRaw := r.URL.Query().Get("since"); sinceRaw != "" {
		since, err := strconv.ParseInt(sinceRaw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be an event id")
			return
		}
		filtered := events[:0]
		for _, ev := range events {
			if ev.ID > since {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Current totals first, so a fresh client can render immediately.
	writeSSE(w, Event{Type: "snapshot", Timestamp: time.Now(), Totals: s.totals()})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

// mutating guards write endpoints: POST only, refused in read-only mode and
// rate-limited per client.
func (s *Service) mutating(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		if s.cfg.ReadOnly {
			writeError(w, http.StatusForbidden, "read-only")
			return
		}
		if !s.limiter.allow(r) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

// otherEndpoint labels requests for unrouted paths so the metric's label set
// stays bounded.
const otherEndpoint = "other"

func (s *Service) loggingMiddleware(next http.Handler, routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		endpoint := r.URL.Path
		if _, ok := routes[endpoint]; !ok {
			endpoint = otherEndpoint
		}
		s.metrics.requests.WithLabelValues(endpoint, strconv.Itoa(recorder.status)).Inc()
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps the event stream working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
