package config

import (
	"HealGolang/internal/api/emotion"
	emotionHandler "HealGolang/internal/api/emotion/handler"
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/internal/middleware"
	"HealGolang/pkg/redis"
	"HealGolang/pkg/utils"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	log         *logrus.Logger
	env         Env
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	frameSource emotionService.IFrameSource
	faceLocator emotionService.IFaceLocator
	classifier  emotionService.IEmotionClassifier
	annotator   emotionService.IAnnotator
	closers     []func()
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.frameSource == nil || server.faceLocator == nil || server.classifier == nil {
		return nil, fmt.Errorf("frame source, face locator and emotion classifier are required")
	}
	if server.annotator == nil {
		return nil, fmt.Errorf("annotator is required for the frame stream")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithEnv(env Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

// WithRedisServer makes the capture device exclusive across processes. A nil
// server leaves the in-process lock as the only guard.
func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		if redisServer == nil {
			return nil
		}
		s.redisServer = redisServer
		s.closers = append(s.closers, func() { redisServer.Close() })
		return nil
	}
}

func WithFrameSource(source emotionService.IFrameSource) ServerOption {
	return func(s *Server) error {
		s.frameSource = source
		return nil
	}
}

func WithFaceLocator(locator emotionService.IFaceLocator) ServerOption {
	return func(s *Server) error {
		s.faceLocator = locator
		return nil
	}
}

// WithEmotionClassifier takes the classifier and the func that releases it.
func WithEmotionClassifier(classifier emotionService.IEmotionClassifier, closer func()) ServerOption {
	return func(s *Server) error {
		s.classifier = classifier
		if closer != nil {
			s.closers = append(s.closers, closer)
		}
		return nil
	}
}

func WithAnnotator(annotator emotionService.IAnnotator) ServerOption {
	return func(s *Server) error {
		s.annotator = annotator
		return nil
	}
}

func (s *Server) RegisterHandler() {
	if s.utils == nil {
		s.utils = utils.New()
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	if s.middleware == nil {
		s.middleware = middleware.New(s.log)
	}

	source := s.frameSource
	if s.redisServer != nil {
		source = emotionService.NewLeasedSource(source, s.redisServer, "heal:device:"+s.env.DeviceKey(), s.env.DeviceLeaseTTL, s.log)
	}

	// Emotion Domain
	emotionServices := emotionService.NewEmotionService(
		s.log,
		source,
		s.faceLocator,
		s.classifier,
		emotion.DefaultSuggestionCatalog(),
		s.utils,
		s.env.DefaultParams(),
	)
	emotionHandlers := emotionHandler.New(s.log, s.validator, s.middleware, emotionServices, s.annotator, s.utils, s.env.DetectTimeout)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, emotionHandlers)
}

func (s *Server) mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware(), s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.mount()

	port := s.env.AppPort
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests and releases the classifier and lease
// backend.
func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
