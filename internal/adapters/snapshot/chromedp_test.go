package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAcquire_Backpressure_OnlyOneAtATime(t *testing.T) {
	// Arrange
	pool := newPool(1)
	var current, maxSeen int32
	var wg sync.WaitGroup

	// Act
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := pool.acquire(context.Background())
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			n := atomic.AddInt32(&current, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&current, -1)
			release()
		}()
	}
	wg.Wait()

	// Assert
	if maxSeen != 1 {
		t.Errorf("max concurrent tabs = %d, want 1", maxSeen)
	}
}

func TestAcquire_HonorsMaxTabs(t *testing.T) {
	pool := newPool(2)

	r1, err1 := pool.acquire(context.Background())
	r2, err2 := pool.acquire(context.Background())
	if err1 != nil || err2 != nil {
		t.Fatalf("acquire errors: %v, %v", err1, err2)
	}
	defer r1()
	defer r2()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := pool.acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("third acquire: got %v, want DeadlineExceeded", err)
	}
}

func TestAcquire_ReleaseFreesSlot(t *testing.T) {
	pool := newPool(0) // clamped to 1

	release, err := pool.acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := pool.acquire(ctx); err != nil {
		t.Errorf("slot not released: %v", err)
	}
}

func TestWithTab_CanceledWhileWaiting(t *testing.T) {
	pool := newPool(1)
	release, _ := pool.acquire(context.Background())
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := pool.WithTab(ctx, func(context.Context) error {
		called = true
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if called {
		t.Error("fn ran without a tab slot")
	}
}

func TestWithTab_ClosedPool(t *testing.T) {
	pool := newPool(1)

	err := pool.WithTab(context.Background(), func(context.Context) error { return nil })

	if err == nil {
		t.Error("expected error from a pool without a browser")
	}
	// The failed call must still give the slot back.
	release, err := pool.acquire(context.Background())
	if err != nil {
		t.Fatalf("slot leaked: %v", err)
	}
	release()
}

func TestNewSnapshotter_DefaultTimeout(t *testing.T) {
	s := NewSnapshotter(newPool(1), 800, 600, 0)
	if s.timeout != defaultCaptureTimeout {
		t.Errorf("timeout = %v, want %v", s.timeout, defaultCaptureTimeout)
	}
}
