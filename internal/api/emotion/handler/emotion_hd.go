package emotionHandler

import (
	"HealGolang/internal/api/emotion"
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/internal/entity"
	contextPkg "HealGolang/pkg/context"
	"HealGolang/pkg/handlerUtil"
	"HealGolang/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	writeTimeout = 10 * time.Second
	// closeGrace is how long the client gets to answer our close frame.
	closeGrace = time.Second
)

// profileParams resolves the query profile. An empty profile leaves the
// service default in place.
func profileParams(profile string) (entity.DetectionParams, error) {
	if profile == "" {
		return entity.DetectionParams{}, nil
	}
	params, ok := entity.DetectionProfile(profile).Params()
	if !ok {
		return entity.DetectionParams{}, emotion.ErrInvalidProfile
	}
	return params, nil
}

func (h *EmotionHandler) Detect(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := contextPkg.WithTimeout(ctx, h.detectTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req emotion.DetectRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	params, err := profileParams(req.Profile)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "resolve_profile")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"profile":    req.Profile,
	}).Debug("Starting emotion detection")

	outcome, err := h.emotionService.RunSession(c, emotionService.SessionRequest{Params: params})
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "detect_emotion")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"status":     outcome.Status,
		"emotion":    outcome.Emotion,
		"reason":     outcome.Reason,
	}).Info("Emotion detection finished")

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, emotion.NewDetectResponse(outcome))
}

func (h *EmotionHandler) Suggestions(ctx *fiber.Ctx) error {
	catalog := h.emotionService.Catalog()
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, emotion.SuggestionsResponse{
		Suggestions: catalog.Entries(),
		Fallback:    catalog.Fallback(),
	})
}

// handleStream runs one session and pushes every searched frame to the client
// as an annotated JPEG, then the outcome as JSON. Closing the socket from the
// client side cancels the session.
func (h *EmotionHandler) handleStream(c *websocket.Conn) {
	ctx, cancel := contextPkg.FromStream(c, h.detectTimeout)
	defer cancel()

	logger := log.WithRequestID(ctx)
	logger.Info("Emotion stream client connected")
	defer logger.Info("Emotion stream client disconnected")

	// The connection is recycled once this handler returns, so the reader
	// must be gone by then.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()
	defer func() {
		c.SetReadDeadline(time.Now().Add(closeGrace))
		<-readerDone
	}()

	profile, _ := c.Locals("profile").(string)
	params, err := profileParams(profile)
	if err != nil {
		h.closeWithError(c, emotion.ErrInvalidProfile, "INVALID_PROFILE", websocket.ClosePolicyViolation)
		return
	}

	observer := func(ev emotionService.FrameEvent) {
		if ctx.Err() != nil {
			return
		}
		if err := h.sendFrame(c, ev); err != nil {
			logger.WithError(err).Debug("Failed to push frame, cancelling session")
			cancel()
		}
	}

	outcome, err := h.emotionService.RunSession(ctx, emotionService.SessionRequest{
		Params:   params,
		Observer: observer,
	})
	if err != nil {
		logger.WithError(err).Warn("Emotion stream could not start")
		h.closeWithError(c, emotion.ErrDeviceUnavailable, "DEVICE_UNAVAILABLE", websocket.CloseTryAgainLater)
		return
	}

	c.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.WriteJSON(emotion.NewStreamResult(outcome)); err != nil {
		logger.WithError(err).Debug("Failed to send stream result")
		return
	}

	c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(outcome.Status)),
		time.Now().Add(time.Second))
}

func (h *EmotionHandler) sendFrame(c *websocket.Conn, ev emotionService.FrameEvent) error {
	img, err := h.annotator.Annotate(ev.Frame.Image, ev.Regions, ev.Emotion)
	if err != nil {
		return err
	}
	data, err := h.utils.EncodeJPEG(img)
	if err != nil {
		return err
	}

	c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.WriteMessage(websocket.BinaryMessage, data)
}

func (h *EmotionHandler) closeWithError(c *websocket.Conn, err error, code string, closeCode int) {
	c.SetWriteDeadline(time.Now().Add(writeTimeout))
	if werr := c.WriteJSON(handlerUtil.ErrorResponse{Error: err.Error(), Code: code}); werr != nil {
		return
	}
	c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(closeCode, err.Error()),
		time.Now().Add(time.Second))
}
