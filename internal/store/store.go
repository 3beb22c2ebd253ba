package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/julmat/internal/model"
)

// StatusKey is the single key holding the serialized status mapping.
const StatusKey = "julmat_status_v1"

// Store owns the in-process status mapping and persists it to a Backend.
// Every mutation writes the full mapping; the last write wins.
type Store struct {
	backend Backend
	log     zerolog.Logger

	mu     sync.RWMutex
	status model.Status
	now    func() time.Time
}

// New returns a store over backend. Call Load before reading Status.
func New(backend Backend, log zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log,
		status:  model.Status{},
		now:     time.Now,
	}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// LoadResult reads the persisted mapping. A missing key yields an empty
// mapping and no error; backend and parse failures are returned.
func (s *Store) LoadResult(ctx context.Context) (model.Status, error) {
	data, err := s.backend.Get(ctx, StatusKey)
	if errors.Is(err, ErrNotFound) {
		return model.Status{}, nil
	}
	if err != nil {
		return model.Status{}, fmt.Errorf("reading status: %w", err)
	}

	status := model.Status{}
	if err := json.Unmarshal(data, &status); err != nil {
		return model.Status{}, fmt.Errorf("parsing status: %w", err)
	}
	if status == nil {
		status = model.Status{}
	}
	return status, nil
}

// Load reads the persisted mapping and makes it current. Any failure falls
// back to an empty mapping; it is logged at debug level and never returned.
func (s *Store) Load(ctx context.Context) model.Status {
	status, err := s.LoadResult(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("persisted status unreadable, starting empty")
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	return status.Clone()
}

// Status returns a copy of the current mapping.
func (s *Store) Status() model.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Clone()
}

// Entry returns the current entry for id.
func (s *Store) Entry(id string) model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Get(id)
}

// Save persists status, overwriting the previous value, and makes it current.
func (s *Store) Save(ctx context.Context, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, status.Clone())
}

func (s *Store) saveLocked(ctx context.Context, status model.Status) error {
	if status == nil {
		status = model.Status{}
	}
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}
	if err := s.backend.Set(ctx, StatusKey, data); err != nil {
		return fmt.Errorf("saving status: %w", err)
	}
	s.status = status
	return nil
}

// Toggle sets one flag on the entry for id and keeps the other (false when
// the entry is absent), then persists the mapping.
func (s *Store) Toggle(ctx context.Context, id string, field model.Field, value bool) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggleLocked(ctx, id, field, value)
}

// Flip inverts one flag on the entry for id. The read and the write happen
// under one lock, so concurrent flips never collapse into one.
func (s *Store) Flip(ctx context.Context, id string, field model.Field) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggleLocked(ctx, id, field, !s.status.Get(id).Value(field))
}

func (s *Store) toggleLocked(ctx context.Context, id string, field model.Field, value bool) (model.Entry, error) {
	next := s.status.Clone()
	e := next.Get(id).With(field, value)
	next[id] = e
	if err := s.saveLocked(ctx, next); err != nil {
		return s.status.Get(id), err
	}
	s.log.Debug().Str("id", id).Stringer("field", field).Bool("value", value).Msg("status toggled")
	return e, nil
}

// Reset removes the persisted mapping. The item list is not affected.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(ctx, StatusKey); err != nil {
		return fmt.Errorf("resetting status: %w", err)
	}
	s.status = model.Status{}
	return nil
}

// modTimer is implemented by backends that record write times.
type modTimer interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// LastModified reports when the status was last persisted. ok is false when
// the backend does not track it or nothing has been saved.
func (s *Store) LastModified(ctx context.Context) (t time.Time, ok bool) {
	mt, isTimer := s.backend.(modTimer)
	if !isTimer {
		return time.Time{}, false
	}
	t, err := mt.UpdatedAt(ctx, StatusKey)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Export wraps the current mapping in an export payload.
func (s *Store) Export() Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ExportPayload(s.status, s.now())
}

// Import parses raw and, on success, fully replaces the persisted mapping.
// On any error the persisted and current mappings are left untouched.
func (s *Store) Import(ctx context.Context, raw []byte) (*Payload, error) {
	p, err := ParsePayload(raw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(ctx, p.Status.Clone()); err != nil {
		return nil, err
	}
	s.log.Debug().Int("entries", len(p.Status)).Msg("status imported")
	return p, nil
}
