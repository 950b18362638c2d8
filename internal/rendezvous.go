package internal

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Rendezvous is a single-slot handshake between a goroutine blocked in Read
// and any number of writers. Writes never block and never queue: a write with
// no reader waiting is dropped.
type Rendezvous struct {
	// slot is unbuffered, so a non-blocking send succeeds only when a reader
	// is parked on it.
	slot chan Value
	// waiting is the number of readers inside Read.
	waiting int32
}

// NewRendezvous creates a Rendezvous.
func NewRendezvous() *Rendezvous {
	return &Rendezvous{slot: make(chan Value)}
}

// Write delivers v to exactly one blocked reader and returns true. If no
// reader is blocked, v is discarded and the result is false.
func (r *Rendezvous) Write(v Value) bool {
	select {
	case r.slot <- v:
		return true
	default:
		return false
	}
}

// Read blocks until a Write delivers a value or ctx is done. In the latter
// case the error wraps both ErrExecutionInterrupted and the context's error.
func (r *Rendezvous) Read(ctx context.Context) (Value, error) {
	atomic.AddInt32(&r.waiting, 1)
	defer atomic.AddInt32(&r.waiting, -1)
	select {
	case v := <-r.slot:
		return v, nil
	case <-ctx.Done():
		return Nil, fmt.Errorf("wait: %w: %w", ErrExecutionInterrupted, ctx.Err())
	}
}

// Waiting returns the number of goroutines currently inside Read. A reader
// is counted slightly before it can receive, so a Write may still fail
// shortly after Waiting reports a reader.
func (r *Rendezvous) Waiting() int {
	return int(atomic.LoadInt32(&r.waiting))
}
