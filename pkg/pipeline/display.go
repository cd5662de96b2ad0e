package pipeline

import "sync"

// Display holds the result currently shown to the user.
//
// Completions of overlapping invocations can arrive in any order. Display
// accepts an [Outcome] only if no newer one has been offered, so a slow
// request for a previous corpus never replaces a faster, newer one. A failed
// outcome records the error but leaves the shown result untouched.
type Display struct {
	mu      sync.Mutex
	current *Result
	lastErr error
	latest  uint64
}

// Offer records a completion. It reports whether the outcome was accepted as
// the newest; stale outcomes are ignored entirely.
func (d *Display) Offer(o Outcome) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if o.Seq < d.latest {
		return false
	}
	d.latest = o.Seq
	if o.Err != nil {
		d.lastErr = o.Err
		return true
	}
	d.current = o.Result
	d.lastErr = nil
	return true
}

// Current returns the shown result, if any.
func (d *Display) Current() (*Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.current != nil
}

// Err returns the error of the newest accepted outcome, or nil if it
// succeeded.
func (d *Display) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}
