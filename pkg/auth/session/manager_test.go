package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	return nil
}

func (m *mockStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func TestManagerGenerateAndRotate(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	ctx := context.Background()
	accessID := "access-123"
	token, err := manager.Generate(ctx, accessID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stored := store.data[store.AccessSessionKey(accessID)]; stored != token {
		t.Fatalf("expected stored token %q, got %q", token, stored)
	}

	if _, _, err := manager.Rotate(ctx, accessID, "wrong"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid refresh token error, got %v", err)
	}

	newAccessID, newToken, err := manager.Rotate(ctx, accessID, token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if _, exists := store.data[store.AccessSessionKey(accessID)]; exists {
		t.Fatalf("old access key left behind")
	}
	if stored := store.data[store.AccessSessionKey(newAccessID)]; stored != newToken {
		t.Fatalf("expected new token stored, got %q", stored)
	}
}

func TestManagerRotateUnknownSession(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	if _, _, err := manager.Rotate(context.Background(), "missing", "token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid refresh token error, got %v", err)
	}
}

func TestManagerRevoke(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	ctx := context.Background()
	accessID := "access-revoke"
	if _, err := manager.Generate(ctx, accessID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := manager.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, exists := store.data[store.AccessSessionKey(accessID)]; exists {
		t.Fatalf("expected session removed after revoke")
	}
}

func TestManagerHasSession(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	ctx := context.Background()
	ok, err := manager.HasSession(ctx, "nobody")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected no session for unknown access id")
	}

	accessID := "access-live"
	if _, err := manager.Generate(ctx, accessID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	ok, err = manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected active session")
	}
}
