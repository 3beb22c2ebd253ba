package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/julmat/internal/model"
)

func newMemStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	b := NewMemoryBackend()
	return New(b, zerolog.Nop()), b
}

func TestLastModified_MemoryBackendUntracked(t *testing.T) {
	s, _ := newMemStore(t)
	if _, ok := s.LastModified(context.Background()); ok {
		t.Fatal("memory backend should not report a modification time")
	}
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	s, _ := newMemStore(t)
	got := s.Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("Load = %#v, want empty non-nil mapping", got)
	}
}

func TestLoad_CorruptValueFallsBackToEmpty(t *testing.T) {
	s, b := newMemStore(t)
	ctx := context.Background()
	_ = b.Set(ctx, StatusKey, []byte("{not json"))

	if _, err := s.LoadResult(ctx); err == nil {
		t.Fatal("LoadResult should report the parse failure")
	}
	if got := s.Load(ctx); len(got) != 0 {
		t.Fatalf("Load = %v, want empty", got)
	}
}

func TestToggle_PreservesOtherFieldAndPersists(t *testing.T) {
	s, b := newMemStore(t)
	ctx := context.Background()
	s.Load(ctx)

	e, err := s.Toggle(ctx, "julbord__fisk__sill", model.FieldCooked, true)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if e.Bought || !e.Cooked {
		t.Fatalf("entry = %+v, want cooked only", e)
	}

	e, err = s.Toggle(ctx, "julbord__fisk__sill", model.FieldBought, true)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !e.Done() {
		t.Fatalf("entry = %+v, want done", e)
	}

	reloaded := New(b, zerolog.Nop()).Load(ctx)
	if !reloaded.Get("julbord__fisk__sill").Done() {
		t.Fatalf("persisted entry = %+v, want done", reloaded.Get("julbord__fisk__sill"))
	}
}

func TestSave_OverwritesEntirely(t *testing.T) {
	s, _ := newMemStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, model.Status{"a": {Bought: true}, "b": {Cooked: true}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, model.Status{"c": {Bought: true}}); err != nil {
		t.Fatal(err)
	}

	got := s.Load(ctx)
	if len(got) != 1 || !got.Get("c").Bought {
		t.Fatalf("Load = %v, want only c", got)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	tests := []model.Status{
		{},
		{"x": {}},
		{"julbord__fisk__sill": {Bought: true}, "dessert__kall__ostkaka": {Bought: true, Cooked: true}, "stale__key": {Cooked: true}},
	}
	now := time.Date(2025, 12, 23, 18, 30, 0, 0, time.UTC)

	for _, status := range tests {
		data, err := ExportPayload(status, now).Marshal()
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		p, err := ParsePayload(data)
		if err != nil {
			t.Fatalf("ParsePayload: %v", err)
		}
		if !reflect.DeepEqual(p.Status, status) {
			t.Fatalf("round trip = %v, want %v", p.Status, status)
		}
		if p.Version != PayloadVersion || !p.CreatedAt.Equal(now) {
			t.Fatalf("payload meta = %d %v", p.Version, p.CreatedAt)
		}
	}
}

func TestExport_Format(t *testing.T) {
	now := time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)
	data, err := ExportPayload(nil, now).MarshalCompact()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"version":1,"createdAt":"2025-12-24T09:00:00.000Z","status":{}}`
	if string(data) != want {
		t.Fatalf("MarshalCompact = %s, want %s", data, want)
	}
}

func TestImport_RejectsBadFormatAndKeepsState(t *testing.T) {
	s, _ := newMemStore(t)
	ctx := context.Background()
	orig := model.Status{"a": {Bought: true}}
	if err := s.Save(ctx, orig); err != nil {
		t.Fatal(err)
	}

	bad := []string{
		`{"status": "not-an-object"}`,
		`{"status": null}`,
		`{"status": [1, 2]}`,
		`{"version": 1}`,
		`"just a string"`,
		`not json`,
		`{"status": {"a": "yes"}}`,
		`{"STATUS": {"a": {"bought": true}}}`,
		`{"Status": {"a": {"bought": true}}}`,
	}
	for _, raw := range bad {
		if _, err := s.Import(ctx, []byte(raw)); !errors.Is(err, ErrFormat) {
			t.Errorf("Import(%s) err = %v, want ErrFormat", raw, err)
		}
	}

	if got := s.Load(ctx); !reflect.DeepEqual(got, orig) {
		t.Fatalf("state after failed imports = %v, want %v", got, orig)
	}
}

func TestFlip_ConcurrentFlipsAllApply(t *testing.T) {
	for _, n := range []int{2, 7, 16} {
		s, _ := newMemStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.Flip(ctx, "a", model.FieldCooked); err != nil {
					t.Error(err)
				}
			}()
		}
		wg.Wait()

		if got, want := s.Entry("a").Cooked, n%2 == 1; got != want {
			t.Errorf("after %d flips Cooked = %v, want %v", n, got, want)
		}
		if got := s.Load(ctx).Get("a").Cooked; got != (n%2 == 1) {
			t.Errorf("after %d flips persisted Cooked = %v", n, got)
		}
	}
}

func TestParsePayload_ToleratesBadMetadata(t *testing.T) {
	p, err := ParsePayload([]byte(`{"version":"one","createdAt":7,"status":{"a":{"cooked":true}}}`))
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if p.Version != 0 || !p.CreatedAt.IsZero() {
		t.Errorf("metadata = %d %v, want zero values", p.Version, p.CreatedAt)
	}
	if !p.Status.Get("a").Cooked {
		t.Errorf("status = %v", p.Status)
	}
}

func TestImport_FullyReplaces(t *testing.T) {
	s, _ := newMemStore(t)
	ctx := context.Background()
	_ = s.Save(ctx, model.Status{"old": {Bought: true}})

	p, err := s.Import(ctx, []byte(`{"version":1,"status":{"new":{"bought":true,"cooked":true}}}`))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !p.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero when missing", p.CreatedAt)
	}

	got := s.Load(ctx)
	if _, ok := got["old"]; ok {
		t.Fatal("import should replace, not merge")
	}
	if !got.Get("new").Done() {
		t.Fatalf("new entry = %+v", got.Get("new"))
	}
}

func TestReset(t *testing.T) {
	s, b := newMemStore(t)
	ctx := context.Background()
	_ = s.Save(ctx, model.Status{"a": {Bought: true}})

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Get(ctx, StatusKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("key still present: %v", err)
	}
	if len(s.Status()) != 0 {
		t.Fatal("current status not cleared")
	}
}

func TestSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "status.db")

	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer b.Close()

	if _, err := b.Get(ctx, StatusKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty db err = %v, want ErrNotFound", err)
	}

	s := New(b, zerolog.Nop())
	s.Load(ctx)
	if _, err := s.Toggle(ctx, "id", model.FieldBought, true); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := b.UpdatedAt(ctx, StatusKey); err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if ts, ok := s.LastModified(ctx); !ok || time.Since(ts) > time.Minute {
		t.Fatalf("LastModified = %v, %v", ts, ok)
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	b2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b2.Close()

	got := New(b2, zerolog.Nop()).Load(ctx)
	if !got.Get("id").Bought {
		t.Fatalf("reloaded = %v", got)
	}

	if err := b2.Delete(ctx, StatusKey); err != nil {
		t.Fatal(err)
	}
	if err := b2.Delete(ctx, StatusKey); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
