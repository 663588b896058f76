package apiclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshGuard_SingleCaller(t *testing.T) {
	guard := NewRefreshGuard(time.Second)

	token, err := guard.Do(context.Background(), func() (string, error) {
		return "fresh-token", nil
	})
	require.NoError(t, err)
	require.Equal(t, "fresh-token", token)
}

func TestRefreshGuard_ConcurrentCallersShareOneRefresh(t *testing.T) {
	guard := NewRefreshGuard(5 * time.Second)

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	refresh := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "shared-token", nil
	}

	first := make(chan string, 1)
	go func() {
		token, _ := guard.Do(context.Background(), refresh)
		first <- token
	}()
	<-started

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := guard.Do(context.Background(), func() (string, error) {
				t.Error("waiter must not run its own refresh")
				return "", nil
			})
			require.NoError(t, err)
			results[i] = token
		}(i)
	}

	// Give the waiters time to queue before the refresh settles.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, "shared-token", <-first)
	for _, token := range results {
		require.Equal(t, "shared-token", token)
	}
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRefreshGuard_PropagatesErrorToWaiters(t *testing.T) {
	guard := NewRefreshGuard(5 * time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	boom := errors.New("refresh endpoint down")

	go func() {
		_, _ = guard.Do(context.Background(), func() (string, error) {
			close(started)
			<-release
			return "", boom
		})
	}()
	<-started

	errCh := make(chan error, 1)
	go func() {
		_, err := guard.Do(context.Background(), func() (string, error) { return "", nil })
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)
	require.ErrorIs(t, <-errCh, boom)
}

func TestRefreshGuard_WaiterTimesOut(t *testing.T) {
	guard := NewRefreshGuard(50 * time.Millisecond)

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _ = guard.Do(context.Background(), func() (string, error) {
			close(started)
			<-release
			return "late-token", nil
		})
	}()
	<-started

	_, err := guard.Do(context.Background(), func() (string, error) { return "", nil })
	require.ErrorIs(t, err, ErrRefreshTimeout)
}

func TestRefreshGuard_WaiterHonorsContext(t *testing.T) {
	guard := NewRefreshGuard(5 * time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _ = guard.Do(context.Background(), func() (string, error) {
			close(started)
			<-release
			return "", nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := guard.Do(ctx, func() (string, error) { return "", nil })
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)
}
