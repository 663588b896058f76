package apiclient

import (
	"context"
	"sync"
	"time"
)

// refreshResult is what waiters receive once a refresh settles.
type refreshResult struct {
	accessToken string
	err         error
}

// RefreshGuard coordinates concurrent token refreshes: the first caller that
// observes an expired token performs the refresh, everyone else queues and is
// released FIFO with the same result. The guard is a constructed dependency of
// a Client, never package state, so tests can create isolated instances.
type RefreshGuard struct {
	mu       sync.Mutex
	inFlight bool
	waiters  []chan refreshResult

	// waitTimeout bounds how long a queued caller blocks on a stuck refresh.
	waitTimeout time.Duration
}

// NewRefreshGuard creates a guard with the given waiter timeout
func NewRefreshGuard(waitTimeout time.Duration) *RefreshGuard {
	return &RefreshGuard{waitTimeout: waitTimeout}
}

// Do runs fn if no refresh is in flight; otherwise it waits for the in-flight
// refresh. Exactly one fn runs per burst of concurrent callers.
func (g *RefreshGuard) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	g.mu.Lock()
	if g.inFlight {
		ch := make(chan refreshResult, 1)
		g.waiters = append(g.waiters, ch)
		g.mu.Unlock()

		timer := time.NewTimer(g.waitTimeout)
		defer timer.Stop()

		select {
		case res := <-ch:
			return res.accessToken, res.err
		case <-timer.C:
			return "", ErrRefreshTimeout
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	g.inFlight = true
	g.mu.Unlock()

	token, err := fn()

	g.mu.Lock()
	waiters := g.waiters
	g.waiters = nil
	g.inFlight = false
	g.mu.Unlock()

	// Release in enqueue order.
	for _, ch := range waiters {
		ch <- refreshResult{accessToken: token, err: err}
	}

	return token, err
}
