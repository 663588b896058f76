package email

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"minevest.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

type captureSender struct {
	mu   sync.Mutex
	sent []string
	err  error
	done chan struct{}
}

func (s *captureSender) Send(_ context.Context, to, subject, _ string) error {
	s.mu.Lock()
	s.sent = append(s.sent, to+"|"+subject)
	s.mu.Unlock()
	close(s.done)
	return s.err
}

func TestAsyncDispatcherSendsVerificationCode(t *testing.T) {
	sender := &captureSender{done: make(chan struct{})}
	d := NewAsyncDispatcher(sender, "noreply@minevest.test")

	d.SendVerificationCode(context.Background(), "user@example.com", "123456")
	<-sender.done

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Equal(t, []string{"user@example.com|Verify your email"}, sender.sent)
}

func TestAsyncDispatcherSwallowsSendFailure(t *testing.T) {
	sender := &captureSender{done: make(chan struct{}), err: errors.New("smtp down")}
	d := NewAsyncDispatcher(sender, "noreply@minevest.test")

	// Must not panic or propagate.
	d.SendWelcome(context.Background(), "user@example.com", "Ada")
	<-sender.done
}

func TestLogSender(t *testing.T) {
	require.NoError(t, LogSender{}.Send(context.Background(), "user@example.com", "subject", "body"))
}
