package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/leakguard/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key for a scoring request
func CacheKey(text string, declared model.ContentType) string {
	h := sha256.New()
	h.Write([]byte(declared))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "leakguard:v1:" + hex.EncodeToString(h.Sum(nil))
}

// New builds the verdict cache described by cfg. It returns nil when caching
// is disabled; a non-empty Dir adds a disk layer under the memory layer.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}

	memory := NewMemoryCache(cfg.TTL, cfg.CleanupInterval)
	if cfg.Dir == "" {
		return memory
	}
	return NewLayeredCache(memory, NewDiskCache(cfg.Dir, cfg.TTL))
}
