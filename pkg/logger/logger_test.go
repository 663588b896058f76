package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithContextAttachesRequestID(t *testing.T) {
	Init("development")

	require.NotNil(t, WithContext(nil))
	require.NotNil(t, WithContext(context.Background()))

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	enriched := WithContext(ctx)
	require.NotNil(t, enriched)
	// A value under a plain string key is not the logger's key and is ignored.
	plain := context.WithValue(context.Background(), "request_id", "req-43") //nolint:staticcheck
	require.Equal(t, WithContext(context.Background()), WithContext(plain))
}
