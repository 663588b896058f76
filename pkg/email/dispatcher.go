package email

import (
	"context"

	"go.uber.org/zap"
	"minevest.backend/pkg/logger"
)

// Dispatcher sends transactional mail. Delivery is fire-and-forget from the
// caller's perspective: failures are logged, never propagated.
type Dispatcher interface {
	SendVerificationCode(ctx context.Context, to, code string)
	SendPasswordResetCode(ctx context.Context, to, code string)
	SendWelcome(ctx context.Context, to, name string)
}

// Sender performs the actual delivery for one message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// AsyncDispatcher wraps a Sender and dispatches on a goroutine so slow or
// failing mail infrastructure never blocks a request.
type AsyncDispatcher struct {
	sender Sender
	from   string
}

// NewAsyncDispatcher creates a new async dispatcher
func NewAsyncDispatcher(sender Sender, from string) *AsyncDispatcher {
	return &AsyncDispatcher{sender: sender, from: from}
}

func (d *AsyncDispatcher) SendVerificationCode(ctx context.Context, to, code string) {
	d.dispatch(ctx, to, "Verify your email", "Your verification code is "+code)
}

func (d *AsyncDispatcher) SendPasswordResetCode(ctx context.Context, to, code string) {
	d.dispatch(ctx, to, "Reset your password", "Your password reset code is "+code)
}

func (d *AsyncDispatcher) SendWelcome(ctx context.Context, to, name string) {
	d.dispatch(ctx, to, "Welcome to MineVest", "Hi "+name+", your account is ready.")
}

func (d *AsyncDispatcher) dispatch(ctx context.Context, to, subject, body string) {
	go func() {
		// Detached from the request context: the request may finish first.
		if err := d.sender.Send(context.Background(), to, subject, body); err != nil {
			logger.Error(ctx, "email delivery failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
	}()
}

// LogSender is the development Sender: it only logs the message.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, body string) error {
	logger.Info(ctx, "email dispatched",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
