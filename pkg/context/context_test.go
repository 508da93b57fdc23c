package context

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type fakeLocals map[string]interface{}

func (f fakeLocals) Locals(key string) interface{} {
	return f[key]
}

func TestGetRequestID(t *testing.T) {
	require.Equal(t, "unknown", GetRequestID(context.Background()))
	require.Equal(t, "abc", GetRequestID(WithRequestID(context.Background(), "abc")))
}

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		description string
		locals      string
		header      string
		timeout     time.Duration
		wantID      string
		wantBound   bool
	}{
		{description: "id from middleware locals", locals: "01J0LOCALS", header: "other", timeout: time.Second, wantID: "01J0LOCALS", wantBound: true},
		{description: "id from header", header: "from-header", timeout: time.Second, wantID: "from-header", wantBound: true},
		{description: "no id and no timeout", wantID: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tt.locals != "" {
					c.Locals(localsRequestID, tt.locals)
				}
				ctx, cancel := WithTimeout(c, tt.timeout)
				defer cancel()

				req.Equal(tt.wantID, GetRequestID(ctx))
				_, bound := ctx.Deadline()
				req.Equal(tt.wantBound, bound)
				return c.SendStatus(fiber.StatusNoContent)
			})

			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set(localsRequestID, tt.header)
			}
			resp, err := app.Test(r)
			req.NoError(err)
			req.Equal(fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestFromStream(t *testing.T) {
	req := require.New(t)

	ctx, cancel := FromStream(fakeLocals{localsRequestID: "stream-1"}, time.Minute)
	req.Equal("stream-1", GetRequestID(ctx))
	_, bound := ctx.Deadline()
	req.True(bound)

	cancel()
	req.ErrorIs(ctx.Err(), context.Canceled)

	ctx, cancel = FromStream(fakeLocals{}, 0)
	defer cancel()
	req.Equal("unknown", GetRequestID(ctx))
	_, bound = ctx.Deadline()
	req.False(bound)
}
