package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carebridge/backend/internal/domain/providers"
)

// sweepEvery bounds how often Set scans for expired entries.
const sweepEvery = time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryAdapter implements CacheProvider in process memory. It is used when
// Redis is disabled.
type MemoryAdapter struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time

	lastSweep time.Time
}

// NewMemoryAdapter creates an empty in-memory cache
func NewMemoryAdapter() providers.CacheProvider {
	return newMemoryAdapter(time.Now)
}

func newMemoryAdapter(now func() time.Time) *MemoryAdapter {
	return &MemoryAdapter{
		entries:   make(map[string]memoryEntry),
		now:       now,
		lastSweep: now(),
	}
}

// lookup returns the live entry for key, evicting it when expired. Callers hold mu.
func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// sweep drops every expired entry at most once per sweepEvery. Callers hold mu.
func (a *MemoryAdapter) sweep(now time.Time) {
	if now.Sub(a.lastSweep) < sweepEvery {
		return
	}
	a.lastSweep = now
	for key, entry := range a.entries {
		if entry.expired(now) {
			delete(a.entries, key)
		}
	}
}

func (a *MemoryAdapter) lookup(key string) (memoryEntry, bool) {
	entry, ok := a.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if entry.expired(a.now()) {
		delete(a.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

// Get retrieves a copy of the cached value
func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	return append([]byte(nil), entry.value...), nil
}

// Set stores value. A non-positive expiration keeps the entry until deleted.
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, expirationSeconds int) error {
	now := a.now()
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if expirationSeconds > 0 {
		entry.expiresAt = now.Add(time.Duration(expirationSeconds) * time.Second)
	}

	a.mu.Lock()
	a.sweep(now)
	a.entries[key] = entry
	a.mu.Unlock()
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(_ context.Context, key string) error {
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()
	return nil
}

// Exists checks if a live key exists in cache
func (a *MemoryAdapter) Exists(_ context.Context, key string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.lookup(key)
	return ok, nil
}
