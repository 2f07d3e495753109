// Package register provides the single-slot holder shared between an input
// feed and the marquee engine.
package register

import "sync"

// Register holds the most recently stored text. The zero value is empty and
// ready to use. Stores replace the previous value wholesale; there is no
// queue, so a value overwritten before anyone loads it is gone.
type Register struct {
	mu    sync.Mutex
	value string
	ok    bool
}

// Store replaces the held value.
func (r *Register) Store(v string) {
	r.mu.Lock()
	r.value, r.ok = v, true
	r.mu.Unlock()
}

// Clear empties the register.
func (r *Register) Clear() {
	r.mu.Lock()
	r.value, r.ok = "", false
	r.mu.Unlock()
}

// ClearIf empties the register only while it still holds v, so a newer
// value stored in the meantime survives. It reports whether it cleared.
func (r *Register) ClearIf(v string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ok || r.value != v {
		return false
	}
	r.value, r.ok = "", false
	return true
}

// Load returns a snapshot of the held value. ok is false when nothing was
// stored yet or the register was cleared.
func (r *Register) Load() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, r.ok
}
