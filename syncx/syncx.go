// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains the synchronization primitives shared by the licer
// commands.
package syncx

import (
	"context"
	"sync"
)

// Lazy represents a lazily computed value.
type Lazy[T any] struct {
	once sync.Once
	val  T
}

// Get returns T, calling f to compute it, if necessary.
func (l *Lazy[T]) Get(f func() T) T {
	l.once.Do(func() { l.val = f() })
	return l.val
}

// LimitedWaitGroup is a [sync.WaitGroup] that limits the number of concurrently
// working goroutines.
type LimitedWaitGroup struct {
	wg      sync.WaitGroup
	workers chan struct{}
}

// NewLimitedWaitGroup returns a new [LimitedWaitGroup]. A limit below one is
// treated as one.
func NewLimitedWaitGroup(limit int) *LimitedWaitGroup {
	return &LimitedWaitGroup{
		workers: make(chan struct{}, max(limit, 1)),
	}
}

// GoContext starts a new goroutine that executes f. It blocks while the
// number of active goroutines is at the limit, and gives up waiting when ctx
// is done. In that case f is not run and the context error is returned.
func (lwg *LimitedWaitGroup) GoContext(ctx context.Context, f func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case lwg.workers <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	lwg.wg.Go(func() {
		defer func() { <-lwg.workers }()
		f()
	})
	return nil
}

// Wait blocks until all goroutines started by the [LimitedWaitGroup] return.
func (lwg *LimitedWaitGroup) Wait() { lwg.wg.Wait() }
