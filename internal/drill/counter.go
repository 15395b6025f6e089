package drill

import (
	"context"
	"sync"
)

// Counter persists the running total of mastered words across sessions.
type Counter interface {
	Load(ctx context.Context, key string) (int, error)
	Save(ctx context.Context, key string, value int) error
}

// MemoryCounter is a Counter that keeps values in process memory.
type MemoryCounter struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryCounter returns an empty in-memory counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{values: make(map[string]int)}
}

func (c *MemoryCounter) Load(_ context.Context, key string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *MemoryCounter) Save(_ context.Context, key string, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}
