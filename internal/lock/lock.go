// Package lock provides the per-book single-writer lock held while a job runs.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrLocked is returned when the key is already held by someone else.
var ErrLocked = errors.New("lock is held")

// Lock is a held lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out exclusive locks by key without blocking.
type Locker interface {
	TryAcquire(ctx context.Context, key string) (Lock, error)
}

// BookKey is the lock key of a book.
func BookKey(bookID string) string {
	return "booklingo:book:" + bookID
}

// Memory is a process-local Locker.
type Memory struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemory creates an in-process locker.
func NewMemory() *Memory {
	return &Memory{held: make(map[string]struct{})}
}

// TryAcquire takes key or returns ErrLocked.
func (m *Memory) TryAcquire(_ context.Context, key string) (Lock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.held[key]; ok {
		return nil, ErrLocked
	}
	m.held[key] = struct{}{}
	return &memoryLock{m: m, key: key}, nil
}

type memoryLock struct {
	m    *Memory
	key  string
	once sync.Once
}

func (l *memoryLock) Release(_ context.Context) error {
	l.once.Do(func() {
		l.m.mu.Lock()
		delete(l.m.held, l.key)
		l.m.mu.Unlock()
	})
	return nil
}
