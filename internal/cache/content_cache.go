package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"reddit-persona/internal/domain"
)

// ContentCache guarda el contenido crudo ya traido por usuario, para que
// analisis repetidos dentro de la ventana no vuelvan a scrapear.
type ContentCache interface {
	Get(ctx context.Context, username string) ([]domain.RawContent, bool, error)
	Set(ctx context.Context, username string, items []domain.RawContent, ttl time.Duration) error
}

type memoryEntry struct {
	items     []domain.RawContent
	expiresAt time.Time
}

type memoryContentCache struct {
	mu    sync.Mutex
	items map[string]memoryEntry
}

func NewMemoryContentCache() ContentCache {
	return &memoryContentCache{items: make(map[string]memoryEntry)}
}

func (c *memoryContentCache) Get(_ context.Context, username string) ([]domain.RawContent, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[normalizeUser(username)]
	if !ok {
		return nil, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, normalizeUser(username))
		return nil, false, nil
	}
	return entry.items, true, nil
}

func (c *memoryContentCache) Set(_ context.Context, username string, items []domain.RawContent, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[normalizeUser(username)] = memoryEntry{
		items:     items,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

type redisContentCache struct {
	client *redis.Client
	prefix string
}

func NewRedisContentCache(client *redis.Client) ContentCache {
	if client == nil {
		return nil
	}
	return &redisContentCache{
		client: client,
		prefix: "content:user:",
	}
}

func (c *redisContentCache) Get(ctx context.Context, username string) ([]domain.RawContent, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+normalizeUser(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []domain.RawContent
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *redisContentCache) Set(ctx context.Context, username string, items []domain.RawContent, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+normalizeUser(username), data, ttl).Err()
}

func normalizeUser(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
