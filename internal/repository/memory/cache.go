package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Cache keeps JSON blobs in a map and ignores TTLs.
type Cache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewCache() *Cache {
	return &Cache{items: make(map[string][]byte)}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	raw, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = raw
	return nil
}

func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

// Len reports how many keys are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
