package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	domainerrors "minevest.backend/internal/domain/errors"
	"minevest.backend/internal/interfaces/http/response"
	"minevest.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is how long the in-progress lock is held
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is replayable
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware deduplicates mutating requests carrying an
// Idempotency-Key header. The first request acquires a short lock and its
// successful response body is retained; a retry with the same key replays the
// stored body instead of re-executing the handler. Requests without the
// header pass through untouched.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			c.Next()
			return
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)

		ctx := c.Request.Context()
		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				response.AbortError(c, domainerrors.Conflict("request already in progress"))
				return
			}
			// Replay the stored response with its original status.
			status, body := decodeStoredResponse(val)
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(status, body)
			c.Abort()
			return
		}
		if !errors.Is(err, goredis.Nil) {
			// Store unavailable: let the request through rather than block it.
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.AbortError(c, domainerrors.Conflict("request already in progress"))
			return
		}

		w := &bodyCapture{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, storageKey, encodeStoredResponse(c.Writer.Status(), w.body.String()), RetentionDuration)
		} else {
			// Failed attempts must stay retryable.
			_ = redisDel(ctx, storageKey)
		}
	}
}

// Stored responses carry the original status on the first line so a replay is
// indistinguishable from the original (a 201 replays as a 201).
func encodeStoredResponse(status int, body string) string {
	return strconv.Itoa(status) + "\n" + body
}

func decodeStoredResponse(val string) (int, string) {
	line, body, found := strings.Cut(val, "\n")
	if !found {
		return http.StatusOK, val
	}
	status, err := strconv.Atoi(line)
	if err != nil || status < 100 || status > 599 {
		return http.StatusOK, val
	}
	return status, body
}
