package drafts

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"staffloop/models"
	"staffloop/rdx"
)

// Store is the key-scoped autosave channel: one saved draft per wizard owner.
type Store interface {
	Get(ctx context.Context, key string) (models.SavedDraft, bool, error)
	Set(ctx context.Context, key string, draft models.SavedDraft) error
	Clear(ctx context.Context, key string) error
}

// RedisStore keeps autosaved drafts in Redis under draft:autosave:{key}.
type RedisStore struct{}

func redisKey(key string) string {
	return "draft:autosave:" + key
}

func (RedisStore) Get(ctx context.Context, key string) (models.SavedDraft, bool, error) {
	raw, err := rdx.Conn.Get(ctx, redisKey(key)).Result()
	if err == redis.Nil {
		return models.SavedDraft{}, false, nil
	}
	if err != nil {
		return models.SavedDraft{}, false, err
	}
	var saved models.SavedDraft
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return models.SavedDraft{}, false, err
	}
	return saved, true, nil
}

func (RedisStore) Set(ctx context.Context, key string, draft models.SavedDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return rdx.Conn.Set(ctx, redisKey(key), data, 0).Err()
}

func (RedisStore) Clear(ctx context.Context, key string) error {
	return rdx.Conn.Del(ctx, redisKey(key)).Err()
}

// MemoryStore is the in-process Store used in tests.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (models.SavedDraft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return models.SavedDraft{}, false, nil
	}
	var saved models.SavedDraft
	if err := json.Unmarshal(raw, &saved); err != nil {
		return models.SavedDraft{}, false, err
	}
	return saved, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, draft models.SavedDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}
