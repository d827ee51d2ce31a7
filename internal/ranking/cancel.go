package ranking

import "sync"

// CancellationRegistry holds per-user cooperative cancellation flags. Flags
// live in memory only; a process restart clears them, and every new ranking
// run resets its own flag first. The flag is keyed by user, not by JD, so
// cancelling affects all of that user's in-flight runs.
type CancellationRegistry struct {
	mu    sync.Mutex
	flags map[string]bool
}

func NewCancellationRegistry() *CancellationRegistry {
	return &CancellationRegistry{flags: make(map[string]bool)}
}

// SetCancelled marks the user's flag. Idempotent.
func (r *CancellationRegistry) SetCancelled(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[userID] = true
}

// ResetForNewRun clears the user's flag. Called once at the start of every run.
func (r *CancellationRegistry) ResetForNewRun(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[userID] = false
}

// IsCancelled reads the flag without clearing it.
func (r *CancellationRegistry) IsCancelled(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flags[userID]
}
