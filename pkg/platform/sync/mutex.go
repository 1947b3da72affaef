// Package sync serialises work per key over a fixed set of mutexes, so
// memory does not grow with the number of keys.
package sync

import (
	"hash/fnv"
	"sync"
)

const defaultShards = 32

// KeyedMutex maps each key onto one of a fixed number of shards. Distinct keys
// may share a shard; the same key always does.
type KeyedMutex struct {
	shards []sync.Mutex
}

// NewKeyedMutex returns a mutex with n shards, or 32 when n is not positive.
func NewKeyedMutex(n int) *KeyedMutex {
	if n <= 0 {
		n = defaultShards
	}
	return &KeyedMutex{shards: make([]sync.Mutex, n)}
}

// Lock locks key's shard and returns the matching unlock.
func (m *KeyedMutex) Lock(key string) (unlock func()) {
	mu := &m.shards[m.shard(key)]
	mu.Lock()
	return mu.Unlock
}

// Do runs fn while holding key's shard.
func (m *KeyedMutex) Do(key string, fn func() error) error {
	defer m.Lock(key)()
	return fn()
}

func (m *KeyedMutex) shard(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(m.shards)))
}
