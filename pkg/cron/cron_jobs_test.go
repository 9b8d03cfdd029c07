package cron

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSendConcurrentlyCollectsAllErrors(t *testing.T) {
	// Well past any plausible fixed buffer size: every send failing
	// must still drain without blocking a goroutine.
	const n = 50

	done := make(chan []error, 1)
	go func() {
		done <- sendConcurrently(n, func(i int) error {
			return errors.New("send failed")
		})
	}()

	select {
	case errs := <-done:
		if len(errs) != n {
			t.Errorf("got %d errors, want %d", len(errs), n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sendConcurrently did not finish; senders blocked")
	}
}

func TestSendConcurrentlyPartialFailures(t *testing.T) {
	var sent int32

	errs := sendConcurrently(10, func(i int) error {
		if i%2 == 0 {
			return errors.New("send failed")
		}
		atomic.AddInt32(&sent, 1)
		return nil
	})

	if len(errs) != 5 {
		t.Errorf("got %d errors, want 5", len(errs))
	}
	if sent != 5 {
		t.Errorf("got %d successful sends, want 5", sent)
	}
}

func TestSendConcurrentlyEmpty(t *testing.T) {
	if errs := sendConcurrently(0, func(i int) error {
		t.Error("send called for empty job set")
		return nil
	}); len(errs) != 0 {
		t.Errorf("got %d errors, want 0", len(errs))
	}
}
