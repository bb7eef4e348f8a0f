package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
)

// cachedModule is a converted module with the hash of its source
type cachedModule struct {
	module arm.Module
	hash   string
}

// Cache loads module files and reuses the converted module while the file
// content is unchanged. Returned modules are shared and must not be mutated.
type Cache struct {
	entries map[string]*cachedModule
	mu      sync.RWMutex
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*cachedModule),
	}
}

// Load returns the module at path, reporting whether it came from the cache.
// The file is read on every call; only parsing is skipped.
func (c *Cache) Load(path string) (arm.Module, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return arm.Module{}, false, fmt.Errorf("failed to read module file: %w", err)
	}
	hash := hashContent(data)

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if ok && entry.hash == hash {
		return entry.module, true, nil
	}

	m, err := Parse(data)
	if err != nil {
		c.Invalidate(path)
		if ce, ok := errors.As(err); ok {
			return arm.Module{}, false, ce.WithFile(path)
		}
		return arm.Module{}, false, err
	}

	c.mu.Lock()
	c.entries[path] = &cachedModule{module: m, hash: hash}
	c.mu.Unlock()

	return m, false, nil
}

// Invalidate removes an entry from the cache
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Size returns the number of cached modules
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// hashContent computes a SHA-256 hash of the given content
func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
