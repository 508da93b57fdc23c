package handlerUtil

import (
	"HealGolang/internal/api/emotion"
	"HealGolang/pkg/log"
	"HealGolang/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	// Emotion domain errors
	if errors.Is(err, emotion.ErrDeviceUnavailable) {
		h.logger.WithFields(fields).Warn("Camera unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: emotion.ErrDeviceUnavailable.Error(),
			Code:  "DEVICE_UNAVAILABLE",
		})
	}

	if errors.Is(err, emotion.ErrInvalidProfile) {
		h.logger.WithFields(fields).Warn("Invalid detection profile")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: emotion.ErrInvalidProfile.Error(),
			Code:  "INVALID_PROFILE",
		})
	}

	if errors.Is(err, emotion.ErrClassification) {
		h.logger.WithFields(fields).Warn("Emotion classification failed")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: emotion.ErrClassification.Error(),
			Code:  "CLASSIFICATION_ERROR",
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: respErr.Error()})
	}

	// Raw device and model errors never reach the client.
	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(response.StatusOf(emotion.ErrInternalServerError, fiber.StatusInternalServerError)).JSON(ErrorResponse{
		Error:   emotion.ErrInternalServerError.Error(),
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
