package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps preferences in process memory. Entries expire after the
// configured TTL; each write refreshes the entry's expiry.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewMemoryStore creates a MemoryStore. A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	expiration := ttl
	cleanup := 2 * ttl
	if ttl <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &MemoryStore{
		cache: cache.New(expiration, cleanup),
		ttl:   expiration,
	}
}

func cacheKey(sessionID, key string) string {
	return sessionID + ":" + key
}

// GetPreference retrieves the value of key for sessionID.
func (m *MemoryStore) GetPreference(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, found := m.cache.Get(cacheKey(sessionID, key))
	if !found {
		slog.DebugContext(ctx, "No preference in memory store", "sessionID", sessionID, "key", key)
		return "", false, nil
	}
	value, _ := v.(string)
	return value, true, nil
}

// SetPreference stores value under key for sessionID.
func (m *MemoryStore) SetPreference(ctx context.Context, sessionID, key, value string) error {
	m.cache.Set(cacheKey(sessionID, key), value, m.ttl)
	slog.DebugContext(ctx, "Stored preference in memory store", "sessionID", sessionID, "key", key)
	return nil
}

// DeletePreference removes key for sessionID. Missing keys are not an error.
func (m *MemoryStore) DeletePreference(ctx context.Context, sessionID, key string) error {
	m.cache.Delete(cacheKey(sessionID, key))
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
