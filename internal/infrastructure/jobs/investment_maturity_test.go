package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type maturedCompleterStub struct {
	completed int
	err       error
	calls     int
	lastBatch int
}

func (s *maturedCompleterStub) CompleteMatured(_ context.Context, _ time.Time, batchSize int) (int, error) {
	s.calls++
	s.lastBatch = batchSize
	return s.completed, s.err
}

func TestSweep_Success(t *testing.T) {
	stub := &maturedCompleterStub{completed: 3}
	job := NewInvestmentMaturityJob(stub, time.Minute, 50)

	job.sweep(context.Background())
	require.Equal(t, 1, stub.calls)
	require.Equal(t, 50, stub.lastBatch)
}

func TestSweep_ErrorDoesNotPanic(t *testing.T) {
	stub := &maturedCompleterStub{err: errors.New("db down")}
	job := NewInvestmentMaturityJob(stub, time.Minute, 50)

	job.sweep(context.Background())
	require.Equal(t, 1, stub.calls)
}

func TestNewInvestmentMaturityJob_Defaults(t *testing.T) {
	job := NewInvestmentMaturityJob(&maturedCompleterStub{}, 0, 0)
	require.Equal(t, time.Minute, job.interval)
	require.Equal(t, 100, job.batchSize)
}

func TestStartStop_StopsByContext(t *testing.T) {
	job := NewInvestmentMaturityJob(&maturedCompleterStub{}, time.Millisecond, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewInvestmentMaturityJob(&maturedCompleterStub{}, time.Millisecond, 10)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
