package memory

import (
	"context"
	"sync"
)

// KeyLocker serializes read-modify-write cycles per key. The Redis adapter
// provides a distributed implementation; LocalLocker covers single-process
// deployments without Redis.
type KeyLocker interface {
	// Acquire blocks until the lock on key is held or ctx expires, and
	// returns the release function.
	Acquire(ctx context.Context, key string) (func(), error)
}

// LocalLocker is an in-process KeyLocker backed by per-key mutexes
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalLocker creates new in-process key locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the mutex for key, creating it on first use
func (l *LocalLocker) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
