package repository

import (
	"sort"
	"sync"
)

// SlotKey identifies the serialization domain for booking writes.
// All writes touching the same facility on the same date contend on one key.
func SlotKey(facilityID, date string) string {
	return facilityID + "|" + date
}

// SlotLocker serializes booking mutations per slot key. Unlike a fail-fast
// advisory lock, callers block until the key is free, so two compatible
// bookings on the same day both succeed instead of one failing spuriously.
type SlotLocker interface {
	// Lock acquires every key and returns a release function. Keys are
	// deduplicated and acquired in sorted order so that two callers locking
	// overlapping key sets cannot deadlock.
	Lock(keys ...string) (release func())
}

type slotEntry struct {
	mu   sync.Mutex
	refs int
}

type keyedSlotLocker struct {
	mu      sync.Mutex
	entries map[string]*slotEntry
}

func NewSlotLocker() SlotLocker {
	return &keyedSlotLocker{entries: make(map[string]*slotEntry)}
}

func (l *keyedSlotLocker) Lock(keys ...string) func() {
	ordered := dedupeSorted(keys)

	locked := make([]*slotEntry, 0, len(ordered))
	for _, key := range ordered {
		e := l.acquire(key)
		e.mu.Lock()
		locked = append(locked, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release in reverse acquisition order.
			for i := len(locked) - 1; i >= 0; i-- {
				locked[i].mu.Unlock()
				l.release(ordered[i])
			}
		})
	}
}

func (l *keyedSlotLocker) acquire(key string) *slotEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &slotEntry{}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *keyedSlotLocker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func dedupeSorted(keys []string) []string {
	if len(keys) <= 1 {
		return append([]string(nil), keys...)
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
