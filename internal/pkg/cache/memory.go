package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryClient é um Client em memória, usado quando REDIS_ADDR está vazio
// (instância única, desenvolvimento) e nos testes.
type MemoryClient struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	value     string
	expiresAt time.Time // zero = sem expiração
}

// NewMemoryClient cria um cache em memória vazio.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{items: make(map[string]memoryItem), now: time.Now}
}

func (c *MemoryClient) lookup(key string) (memoryItem, bool) {
	item, ok := c.items[key]
	if !ok {
		return memoryItem{}, false
	}
	if !item.expiresAt.IsZero() && !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		return memoryItem{}, false
	}
	return item, true
}

func (c *MemoryClient) expiry(expiration time.Duration) time.Time {
	if expiration <= 0 {
		return time.Time{}
	}
	return c.now().Add(expiration)
}

// Get recupera o valor associado a uma chave.
func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

// Set define um valor para uma chave; []byte e string são guardados como texto.
func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}
	c.items[key] = memoryItem{value: s, expiresAt: c.expiry(expiration)}
	return nil
}

// Delete remove uma ou mais chaves.
func (c *MemoryClient) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

// DeleteByPrefix remove todas as chaves com o prefixo informado.
func (c *MemoryClient) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

// Incr incrementa o contador da chave; a expiração é definida quando o contador nasce.
func (c *MemoryClient) Incr(_ context.Context, key string, expiration time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		c.items[key] = memoryItem{value: "1", expiresAt: c.expiry(expiration)}
		return 1, nil
	}

	var n int64
	if _, err := fmt.Sscan(item.value, &n); err != nil {
		return 0, fmt.Errorf("valor da chave %s não é um inteiro: %w", key, err)
	}
	n++
	item.value = fmt.Sprint(n)
	c.items[key] = item
	return n, nil
}
