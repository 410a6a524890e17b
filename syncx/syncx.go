// Package syncx runs functions while holding a lock or semaphore and always releases it afterward,
// also when the function panics.
package syncx

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/AntonStoeckl/domain-types-go/guard"
)

// WithReadLock runs fn while holding the read lock of mu.
func WithReadLock[T any](mu *sync.RWMutex, fn func() T) T {
	mu.RLock()
	defer mu.RUnlock()

	return fn()
}

// WithWriteLock runs fn while holding the write lock of mu.
func WithWriteLock[T any](mu *sync.RWMutex, fn func() T) T {
	mu.Lock()
	defer mu.Unlock()

	return fn()
}

// WithSemaphore acquires weight from sem, runs fn, and releases weight again.
// It returns the context error without running fn when ctx ends before the semaphore is acquired.
func WithSemaphore(ctx context.Context, sem *semaphore.Weighted, weight int64, fn func() error) error {
	_, err := WithSemaphoreValue(ctx, sem, weight, func() (struct{}, error) {
		return struct{}{}, fn()
	})

	return err
}

// WithSemaphoreValue is WithSemaphore for functions that return a value.
func WithSemaphoreValue[T any](ctx context.Context, sem *semaphore.Weighted, weight int64, fn func() (T, error)) (T, error) {
	var zero T

	if err := guard.Positive("weight", weight); err != nil {
		return zero, err
	}

	if err := sem.Acquire(ctx, weight); err != nil {
		return zero, err
	}
	defer sem.Release(weight)

	return fn()
}
