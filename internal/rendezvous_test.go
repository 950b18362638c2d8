package internal

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestRendezvousNoReader tests that writes with nobody waiting are dropped.
func TestRendezvousNoReader(t *testing.T) {
	r := NewRendezvous()
	if r.Write(Number(5)) {
		t.Error("write succeeded with no reader")
	}
	if r.Waiting() != 0 {
		t.Errorf("%d readers waiting", r.Waiting())
	}
}

// TestRendezvousDeliver tests that a write reaches a blocked reader.
func TestRendezvousDeliver(t *testing.T) {
	r := NewRendezvous()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	type result struct {
		v   Value
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := r.Read(ctx)
		ch <- result{v, err}
	}()
	// The reader may not be parked yet, so keep trying.
	for !r.Write(Number(5)) {
		select {
		case <-ctx.Done():
			t.Fatal("reader never became ready")
		case <-time.After(time.Millisecond):
		}
	}
	res := <-ch
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.v != Number(5) {
		t.Errorf("wrong value delivered: %v", res.v)
	}
	if r.Write(Number(6)) {
		t.Error("second write succeeded after the reader left")
	}
}

// TestRendezvousInterrupt tests that cancelling the context ends a read.
func TestRendezvousInterrupt(t *testing.T) {
	r := NewRendezvous()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.Read(ctx)
		done <- err
	}()
	for r.Waiting() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, ErrExecutionInterrupted) || !errors.Is(err, context.Canceled) {
			t.Errorf("wrong error %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("read didn't end after cancellation")
	}
}
