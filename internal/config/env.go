package config

import (
	"HealGolang/internal/entity"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	AppPort  string `envconfig:"APP_PORT" default:"3000"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`

	// FRAME_SOURCE picks the capture backend: gocv for a local camera or an
	// ffmpeg MJPEG pipe for anything ffmpeg can read.
	FrameSource   string  `envconfig:"FRAME_SOURCE" default:"opencv" validate:"oneof=opencv ffmpeg"`
	CameraDevice  string  `envconfig:"CAMERA_DEVICE" default:"0" validate:"required"`
	FFmpegInput   string  `envconfig:"FFMPEG_INPUT" default:"/dev/video0" validate:"required_if=FrameSource ffmpeg"`
	FFmpegFormat  string  `envconfig:"FFMPEG_FORMAT"`
	CaptureMaxFPS float64 `envconfig:"CAPTURE_MAX_FPS" default:"15" validate:"gte=0"`

	CascadePath    string `envconfig:"CASCADE_PATH" default:"data/haarcascade_frontalface_default.xml"`
	LocatorProfile string `envconfig:"LOCATOR_PROFILE" default:"lax" validate:"oneof=lax strict"`

	EmotionClassifier string `envconfig:"EMOTION_CLASSIFIER" default:"worker" validate:"oneof=worker websocket gemini"`
	WorkerPython      string `envconfig:"WORKER_PYTHON" default:"python3"`
	WorkerScript      string `envconfig:"WORKER_SCRIPT" default:"python/emotion_worker.py"`
	WorkerPoolSize    int    `envconfig:"WORKER_POOL_SIZE" default:"1" validate:"min=1"`
	AIEmotionURL      string `envconfig:"AI_EMOTION_URL"`
	GeminiAPIKey      string `envconfig:"GEMINI_API_KEY" validate:"required_if=EmotionClassifier gemini"`
	GeminiModelName   string `envconfig:"GEMINI_MODEL_NAME"`

	// REDIS_ADDRESS enables the cross-process device lease when set.
	RedisAddress   string        `envconfig:"REDIS_ADDRESS"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	DeviceLeaseTTL time.Duration `envconfig:"DEVICE_LEASE_TTL" default:"30s" validate:"gt=0"`

	DetectTimeout time.Duration `envconfig:"DETECT_TIMEOUT" default:"30s" validate:"gt=0"`
}

func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := NewValidator().Struct(env); err != nil {
		return Env{}, fmt.Errorf("invalid environment: %w", err)
	}

	return env, nil
}

// DefaultParams is the detection profile used when a request names none.
func (e Env) DefaultParams() entity.DetectionParams {
	params, ok := entity.DetectionProfile(e.LocatorProfile).Params()
	if !ok {
		return entity.LaxDetection
	}
	return params
}

// DeviceKey identifies the capture device for locks and leases.
func (e Env) DeviceKey() string {
	if e.FrameSource == "ffmpeg" {
		return e.FFmpegInput
	}
	return e.CameraDevice
}
