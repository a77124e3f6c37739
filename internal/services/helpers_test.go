package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/clients/redis"
	"github.com/yungbote/publisher-backend/internal/data/repos"
	"github.com/yungbote/publisher-backend/internal/data/repos/testutil"
	"github.com/yungbote/publisher-backend/internal/platform/apierr"
)

var testNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db           *gorm.DB
	medias       MediaService
	posts        PostService
	publications PublicationService
}

func newFixture(t *testing.T, cache redis.LookupCache) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	if cache == nil {
		cache = redis.NewNoopCache()
	}

	mediaRepo := repos.NewMediaRepo(db, log)
	postRepo := repos.NewPostRepo(db, log)
	publicationRepo := repos.NewPublicationRepo(db, log)

	medias := NewMediaService(db, log, mediaRepo, publicationRepo, cache)
	posts := NewPostService(db, log, postRepo, publicationRepo, cache)
	publications := NewPublicationService(db, log, publicationRepo, medias, posts, func() time.Time { return testNow })

	return &fixture{db: db, medias: medias, posts: posts, publications: publications}
}

func requireAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d %s, got nil error", status, code)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("expected %d %s, got %d %s (%v)", status, code, ae.Status, ae.Code, err)
	}
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	return raw, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

func (m *memCache) Ping(context.Context) error { return nil }
func (m *memCache) Close() error               { return nil }
