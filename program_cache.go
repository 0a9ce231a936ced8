package bindings

import "sync"

// ProgramCache stores compiled key-path programs keyed by the key-path string.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// NewProgramCache returns a mutex-guarded in-memory ProgramCache. Programs
// are compiled per key path, not per scope, so the cache stays small.
func NewProgramCache() ProgramCache {
	return &memoryProgramCache{programs: make(map[string]any)}
}

type memoryProgramCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

func (c *memoryProgramCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.programs[key]
	return value, ok
}

func (c *memoryProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.programs[key] = value
}
