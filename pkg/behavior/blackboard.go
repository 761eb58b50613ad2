package behavior

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

const defaultShardCount = 16

// Blackboard is the shared mutable payload every node sees during a tick.
// Keys are distributed over shards by xxhash so sibling leaves evaluated
// under Parallel can read and write concurrently without contending on a
// single lock.
type Blackboard struct {
	shards  []bbShard
	version atomic.Uint64
}

type bbShard struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	bb := &Blackboard{shards: make([]bbShard, defaultShardCount)}
	for i := range bb.shards {
		bb.shards[i].data = make(map[string]any)
	}
	return bb
}

func (bb *Blackboard) shard(key string) *bbShard {
	return &bb.shards[xxhash.Sum64String(key)%uint64(len(bb.shards))]
}

// Set stores a value under key.
func (bb *Blackboard) Set(key string, value any) {
	s := bb.shard(key)
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	bb.version.Add(1)
}

// Get retrieves a value by key. Returns (nil, false) if absent.
func (bb *Blackboard) Get(key string) (any, bool) {
	s := bb.shard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, exists := s.data[key]
	return value, exists
}

// GetString retrieves a string value by key.
func (bb *Blackboard) GetString(key string) (string, bool) {
	value, exists := bb.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// GetInt retrieves an int value by key; float64 values are truncated.
func (bb *Blackboard) GetInt(key string) (int, bool) {
	value, exists := bb.Get(key)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetFloat retrieves a float64 value by key; int values are widened.
func (bb *Blackboard) GetFloat(key string) (float64, bool) {
	value, exists := bb.Get(key)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a boolean value by key.
func (bb *Blackboard) GetBool(key string) (bool, bool) {
	value, exists := bb.Get(key)
	if !exists {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// Has checks whether key exists.
func (bb *Blackboard) Has(key string) bool {
	_, exists := bb.Get(key)
	return exists
}

// Delete removes a key.
func (bb *Blackboard) Delete(key string) {
	s := bb.shard(key)
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	bb.version.Add(1)
}

// Keys returns a snapshot of existing keys, in no particular order.
func (bb *Blackboard) Keys() []string {
	keys := make([]string, 0)
	for i := range bb.shards {
		s := &bb.shards[i]
		s.mu.RLock()
		for key := range s.data {
			keys = append(keys, key)
		}
		s.mu.RUnlock()
	}
	return keys
}

// Len returns the number of stored keys.
func (bb *Blackboard) Len() int {
	n := 0
	for i := range bb.shards {
		s := &bb.shards[i]
		s.mu.RLock()
		n += len(s.data)
		s.mu.RUnlock()
	}
	return n
}

// Clear removes all data.
func (bb *Blackboard) Clear() {
	for i := range bb.shards {
		s := &bb.shards[i]
		s.mu.Lock()
		s.data = make(map[string]any)
		s.mu.Unlock()
	}
	bb.version.Add(1)
}

// Version returns a counter incremented on every mutation; useful for
// change detection by telemetry consumers.
func (bb *Blackboard) Version() uint64 {
	return bb.version.Load()
}

// Snapshot returns a shallow copy of the stored data.
func (bb *Blackboard) Snapshot() map[string]any {
	out := make(map[string]any, bb.Len())
	for i := range bb.shards {
		s := &bb.shards[i]
		s.mu.RLock()
		for key, value := range s.data {
			out[key] = value
		}
		s.mu.RUnlock()
	}
	return out
}
