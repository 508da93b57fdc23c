package main

import (
	"HealGolang/internal/config"
	"HealGolang/pkg/log"
	"HealGolang/pkg/opencv"
	"HealGolang/pkg/redis"
	"HealGolang/pkg/utils"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn(log.Fields{"error": err.Error()}, "No .env file loaded, using process environment")
	}
	logger := log.NewLogger()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatal(err)
	}

	u := utils.New()
	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	frameSource := config.NewFrameSource(env, u, logger)

	locator, err := opencv.NewCascadeLocator(env.CascadePath)
	if err != nil {
		logger.Fatalf("Error loading face cascade: %v", err)
	}
	defer locator.Close()

	classifier, closeClassifier, err := config.NewEmotionClassifier(env, u, logger)
	if err != nil {
		logger.Fatal(err)
	}

	var redisServer redis.IRedis
	if env.RedisAddress != "" {
		redisServer = redis.New(redis.Config{
			Address:  env.RedisAddress,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
	}

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithEnv(env),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithUtils(),
		config.WithRedisServer(redisServer),
		config.WithFrameSource(frameSource),
		config.WithFaceLocator(locator),
		config.WithEmotionClassifier(classifier, closeClassifier),
		config.WithAnnotator(opencv.NewAnnotator()),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
