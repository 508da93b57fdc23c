package handlerUtil

import (
	"HealGolang/internal/api/emotion"
	"HealGolang/pkg/log"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		description string
		err         error
		status      int
		code        string
	}{
		{"wrapped device error", fmt.Errorf("%w: /dev/video0 busy", emotion.ErrDeviceUnavailable), 503, "DEVICE_UNAVAILABLE"},
		{"invalid profile", emotion.ErrInvalidProfile, 400, "INVALID_PROFILE"},
		{"classification", emotion.ErrClassification, 422, "CLASSIFICATION_ERROR"},
		{"internal", emotion.ErrInternalServerError, 500, ""},
		{"raw error is hidden", errors.New("cv::Mat assertion failed"), 500, ""},
	}

	h := New(log.NewLogger())

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return h.Handle(c, "req-1", tt.err, c.Path(), "test")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var got ErrorResponse
			require.NoError(t, jsoniter.Unmarshal(body, &got))
			require.Equal(t, tt.code, got.Code)
			require.NotContains(t, got.Error, "cv::Mat")
		})
	}
}

func TestHandle_DeviceUnavailableBody(t *testing.T) {
	h := New(log.NewLogger())
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-1", emotion.ErrDeviceUnavailable, c.Path(), "detect")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	require.JSONEq(t, `{"error":"camera unavailable","code":"DEVICE_UNAVAILABLE"}`, string(body))
}

func TestHandle_UnexpectedErrorBody(t *testing.T) {
	req := require.New(t)
	h := New(log.NewLogger())
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-42", errors.New("worker pipe closed"), c.Path(), "detect")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	req.NoError(err)
	req.Equal(fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	req.NoError(err)

	var got ErrorResponse
	req.NoError(jsoniter.Unmarshal(body, &got))
	req.Equal(emotion.ErrInternalServerError.Error(), got.Error)
	req.Equal("req-42", got.TraceID)
}
