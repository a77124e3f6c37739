package redis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type row struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	raw, ok := m.entries[key]
	return raw, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *mapCache) Ping(context.Context) error { return nil }
func (m *mapCache) Close() error               { return nil }

func TestLoaderReadThrough(t *testing.T) {
	cache := newMapCache()
	l := NewLoader[row](cache, logger.Nop(), "media")
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (*row, error) {
		fetches++
		return &row{ID: 7, Title: "Acme"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := l.Load(ctx, 7, fetch)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got.ID != 7 || got.Title != "Acme" {
			t.Fatalf("Load: unexpected row %+v", got)
		}
	}
	if fetches != 1 {
		t.Fatalf("fetches: want=1 got=%d", fetches)
	}
	if _, ok := cache.entries["media:7"]; !ok {
		t.Fatalf("expected key media:7 to be cached")
	}

	l.Forget(ctx, 7)
	if _, err := l.Load(ctx, 7, fetch); err != nil {
		t.Fatalf("Load after Forget: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("fetches after Forget: want=2 got=%d", fetches)
	}
}

func TestLoaderDoesNotCacheErrors(t *testing.T) {
	cache := newMapCache()
	l := NewLoader[row](cache, logger.Nop(), "post")
	wantErr := errors.New("not found")

	_, err := l.Load(context.Background(), 1, func(context.Context) (*row, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("Load: want %v got %v", wantErr, err)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("expected no cached entries, got %d", len(cache.entries))
	}
}

func TestLoaderFallsBackOnCacheFailure(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	cache.entries["post:3"] = []byte("not json")
	l := NewLoader[row](cache, logger.Nop(), "post")

	got, err := l.Load(context.Background(), 3, func(context.Context) (*row, error) {
		return &row{ID: 3, Title: "from store"}, nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "from store" {
		t.Fatalf("Load: expected store row, got %+v", got)
	}
}

func TestLoaderRefetchesUndecodableEntry(t *testing.T) {
	cache := newMapCache()
	cache.entries["post:4"] = []byte("{broken")
	l := NewLoader[row](cache, logger.Nop(), "post")

	got, err := l.Load(context.Background(), 4, func(context.Context) (*row, error) {
		return &row{ID: 4, Title: "fresh"}, nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "fresh" {
		t.Fatalf("Load: expected fresh row, got %+v", got)
	}
}

func TestLoaderForgetDuringFetchDoesNotCacheStaleRow(t *testing.T) {
	cache := newMapCache()
	l := NewLoader[row](cache, logger.Nop(), "media")
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := l.Load(ctx, 1, func(context.Context) (*row, error) {
			close(started)
			<-release
			return &row{ID: 1, Title: "before-delete"}, nil
		})
		done <- err
	}()

	<-started
	l.Forget(ctx, 1)
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Load: %v", err)
	}

	cache.mu.Lock()
	_, cached := cache.entries["media:1"]
	cache.mu.Unlock()
	if cached {
		t.Fatalf("row read before Forget was left in the cache")
	}

	got, err := l.Load(ctx, 1, func(context.Context) (*row, error) {
		return &row{ID: 1, Title: "after-delete"}, nil
	})
	if err != nil {
		t.Fatalf("Load after Forget: %v", err)
	}
	if got.Title != "after-delete" {
		t.Fatalf("Load after Forget: expected fresh row, got %+v", got)
	}
}

func TestLoaderFetchIgnoresCallerCancellation(t *testing.T) {
	l := NewLoader[row](newMapCache(), logger.Nop(), "post")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := l.Load(ctx, 5, func(fctx context.Context) (*row, error) {
		if err := fctx.Err(); err != nil {
			return nil, err
		}
		return &row{ID: 5, Title: "shared"}, nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "shared" {
		t.Fatalf("Load: unexpected row %+v", got)
	}
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("Get: expected miss, got ok=%v err=%v", ok, err)
	}
}
