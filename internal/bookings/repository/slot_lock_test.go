package repository

import (
	"sync"
	"testing"
	"time"
)

func TestSlotKey(t *testing.T) {
	got := SlotKey("665f1f77bcf86cd799439011", "2030-06-01")
	want := "665f1f77bcf86cd799439011|2030-06-01"
	if got != want {
		t.Errorf("SlotKey() = %q, want %q", got, want)
	}
}

func TestSlotLocker_SerializesSameKey(t *testing.T) {
	locker := NewSlotLocker()
	key := SlotKey("fac-1", "2030-06-01")

	var mu sync.Mutex
	var active, maxActive int

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locker.Lock(key)
			defer release()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxActive)
	}
}

func TestSlotLocker_DistinctKeysDoNotBlock(t *testing.T) {
	locker := NewSlotLocker()

	release1 := locker.Lock(SlotKey("fac-1", "2030-06-01"))
	defer release1()

	done := make(chan struct{})
	go func() {
		release2 := locker.Lock(SlotKey("fac-2", "2030-06-01"))
		release2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a distinct key blocked behind an unrelated holder")
	}
}

func TestSlotLocker_MultiKeyOrderingAvoidsDeadlock(t *testing.T) {
	locker := NewSlotLocker()
	a := SlotKey("fac-1", "2030-06-01")
	b := SlotKey("fac-2", "2030-06-02")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			release := locker.Lock(a, b)
			release()
		}()
		go func() {
			defer wg.Done()
			release := locker.Lock(b, a)
			release()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("opposite-order multi-key locking deadlocked")
	}
}

func TestSlotLocker_DuplicateKeys(t *testing.T) {
	locker := NewSlotLocker()
	key := SlotKey("fac-1", "2030-06-01")

	// Duplicate keys collapse to a single acquisition: no self-deadlock.
	release := locker.Lock(key, key, key)
	release()

	release = locker.Lock(key)
	release()
}

func TestSlotLocker_ReleaseIsIdempotent(t *testing.T) {
	locker := NewSlotLocker()
	key := SlotKey("fac-1", "2030-06-01")

	release := locker.Lock(key)
	release()
	release()

	done := make(chan struct{})
	go func() {
		r := locker.Lock(key)
		r()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relock after double release blocked")
	}
}
