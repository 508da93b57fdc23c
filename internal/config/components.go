package config

import (
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/pkg/ffmpeg"
	"HealGolang/pkg/gemini"
	"HealGolang/pkg/opencv"
	"HealGolang/pkg/utils"
	websocketPkg "HealGolang/pkg/websocket"
	"HealGolang/pkg/worker"
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewFrameSource builds the capture backend selected by FRAME_SOURCE.
func NewFrameSource(env Env, u utils.IUtils, logger *logrus.Logger) emotionService.IFrameSource {
	if env.FrameSource == "ffmpeg" {
		return ffmpeg.NewSource(ffmpeg.Config{
			Input:  env.FFmpegInput,
			Format: env.FFmpegFormat,
			MaxFPS: env.CaptureMaxFPS,
		}, u, logger)
	}

	return opencv.NewCameraSource(opencv.CameraConfig{
		Device: env.CameraDevice,
		MaxFPS: env.CaptureMaxFPS,
	}, logger)
}

// NewEmotionClassifier builds the backend selected by EMOTION_CLASSIFIER. The
// returned func releases it.
func NewEmotionClassifier(env Env, u utils.IUtils, logger *logrus.Logger) (emotionService.IEmotionClassifier, func(), error) {
	switch env.EmotionClassifier {
	case "websocket":
		client := websocketPkg.NewAIWebSocketClient(env.AIEmotionURL, logger, u)
		return client, client.CloseConnections, nil

	case "gemini":
		client, err := gemini.NewGeminiClient(gemini.Config{
			APIKey:    env.GeminiAPIKey,
			ModelName: env.GeminiModelName,
		}, u)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, client.Close, nil

	default:
		pool := worker.NewScriptPool(env.WorkerPoolSize, env.WorkerPython, env.WorkerScript, u, logger)
		return pool, pool.Close, nil
	}
}
