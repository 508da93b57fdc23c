package emotionHandler

import (
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/internal/middleware"
	"HealGolang/pkg/utils"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type EmotionHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	emotionService emotionService.IEmotionService
	annotator      emotionService.IAnnotator
	utils          utils.IUtils
	detectTimeout  time.Duration
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	es emotionService.IEmotionService,
	annotator emotionService.IAnnotator,
	utils utils.IUtils,
	detectTimeout time.Duration,
) *EmotionHandler {
	return &EmotionHandler{
		emotionService: es,
		log:            log,
		validator:      validator,
		middleware:     middleware,
		annotator:      annotator,
		utils:          utils,
		detectTimeout:  detectTimeout,
	}
}

func (h *EmotionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("profile", c.Query("profile"))
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	emotion := srv.Group("/emotion")
	emotion.Get("/detect", h.Detect)
	emotion.Get("/suggestions", h.Suggestions)
	emotion.Use("/ws", wsMiddleware)
	emotion.Get("/ws", websocket.New(h.handleStream))
}
