package pool

import "sync"

// Aggregator collects per-item outcomes from concurrent workers behind a
// single mutex, the same mutex-protected-merge shape the comparison
// engine needs wherever workers must write into one shared DirResult
// instead of returning a single pass/fail.
type Aggregator struct {
	mu sync.Mutex
}

// Merge runs fn while holding the aggregator's lock. Callers pass a
// closure that writes into their own shared result struct; Merge only
// owns the synchronization, not the data.
func (a *Aggregator) Merge(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
}
