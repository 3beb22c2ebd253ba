// Package server exposes the checklist over a small HTTP API with a
// change-event stream.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/model"
	"github.com/theirongolddev/julmat/internal/store"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	ReadOnly     bool
	RateLimitRPS float64 // mutating requests per second per client; <= 0 disables
	RateBurst    int
	EventsBuffer int
}

// Event is emitted whenever the status mapping changes.
type Event struct {
	ID        int64        `json:"id"`
	Type      string       `json:"type"` // snapshot, toggle, import, reset
	Timestamp time.Time    `json:"timestamp"`
	Item      string       `json:"item,omitempty"`
	Entry     *model.Entry `json:"entry,omitempty"`
	Totals    model.Totals `json:"totals"`
}

// Service serves one catalog and one store.
type Service struct {
	cfg     Config
	cat     *catalog.Catalog
	st      *store.Store
	sorter  *checklist.Sorter
	log     zerolog.Logger
	metrics *Metrics
	limiter *rateLimiter

	mu          sync.RWMutex
	startedAt   time.Time
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service over cat and st. Metrics are registered on reg; pass
// prometheus.NewRegistry() in tests.
func New(cfg Config, cat *catalog.Catalog, st *store.Store, sorter *checklist.Sorter, reg *prometheus.Registry, log zerolog.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if sorter == nil {
		sorter = checklist.NewSorter(checklist.DefaultLocale)
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Service{
		cfg:       cfg,
		cat:       cat,
		st:        st,
		sorter:    sorter,
		log:       log.With().Str("component", "server").Logger(),
		metrics:   NewMetrics(reg),
		limiter:   newRateLimiter(cfg.RateLimitRPS, cfg.RateBurst),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
	s.metrics.setProgress(s.totals())
	return s
}

// Handler returns the routed API handler with logging and metrics.
func (s *Service) Handler() http.Handler {
	routes := map[string]http.Handler{
		"/healthz":   http.HandlerFunc(s.handleHealth),
		"/v1/items":  http.HandlerFunc(s.handleItems),
		"/v1/stats":  http.HandlerFunc(s.handleStats),
		"/v1/toggle": s.mutating(s.handleToggle),
		"/v1/export": http.HandlerFunc(s.handleExport),
		"/v1/import": s.mutating(s.handleImport),
		"/v1/reset":  s.mutating(s.handleReset),
		"/v1/events": http.HandlerFunc(s.handleEvents),
		"/v1/stream": http.HandlerFunc(s.handleStream),
		"/metrics":   s.metrics.Handler(),
	}
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.Handle(path, h)
	}

	return s.loggingMiddleware(mux, routes)
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Str("addr", s.cfg.Addr).Bool("read_only", s.cfg.ReadOnly).Msg("listening")
	s.publishEvent(Event{Type: "snapshot"})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) totals() model.Totals {
	return checklist.GlobalStats(s.cat.Items, s.st.Status())
}

// publishEvent stamps ev with an id, time and current totals, appends it to
// the ring buffer and fans it out to stream subscribers without blocking.
func (s *Service) publishEvent(ev Event) Event {
	totals := s.totals()
	s.metrics.setProgress(totals)

	s.mu.Lock()
	s.nextEventID++
	ev.ID = s.nextEventID
	ev.Timestamp = time.Now()
	ev.Totals = totals

	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
	return ev
}

func (s *Service) recentEvents() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
