package context

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// localsRequestID is where the request id middleware leaves the id.
const localsRequestID = "X-Request-ID"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

// FromFiberCtx derives a context carrying the request id. It is rooted at the
// fasthttp request context so it ends when the server shuts down.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	requestID, _ := c.Locals(localsRequestID).(string)
	if requestID == "" {
		requestID = c.Get(localsRequestID)
	}
	return WithRequestID(c.Context(), requestID)
}

// WithTimeout bounds a request scoped context. A non-positive timeout only
// adds cancellation.
func WithTimeout(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	return bounded(FromFiberCtx(c), timeout)
}

// StreamLocals is the part of a hijacked websocket connection that still
// carries the upgrade request's locals.
type StreamLocals interface {
	Locals(key string) interface{}
}

// FromStream builds the context for a websocket session. The upgrade request
// is gone by then, so the context is detached and only keeps its id.
func FromStream(conn StreamLocals, timeout time.Duration) (context.Context, context.CancelFunc) {
	requestID, _ := conn.Locals(localsRequestID).(string)
	return bounded(WithRequestID(context.Background(), requestID), timeout)
}

func bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
