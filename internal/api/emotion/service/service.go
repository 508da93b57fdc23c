package emotionService

import (
	"HealGolang/internal/api/emotion"
	"HealGolang/internal/entity"
	"HealGolang/pkg/utils"
	"context"
	"image"
	"time"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=../../../mocks/mock_emotion_service.go -package=mocks

// IFrameSource opens the capture device. Open fails with
// emotion.ErrDeviceUnavailable when the device is missing or already held.
type IFrameSource interface {
	Open(ctx context.Context) (IFrameStream, error)
}

// IFrameStream yields frames until io.EOF. Close releases the device and may
// be called more than once.
type IFrameStream interface {
	Next(ctx context.Context) (entity.Frame, error)
	Close() error
}

type IFaceLocator interface {
	Locate(frame entity.Frame, params entity.DetectionParams) []entity.FaceRegion
}

// IEmotionClassifier runs in lenient mode: a weak or partial face is still
// classified instead of being rejected.
type IEmotionClassifier interface {
	Classify(ctx context.Context, face image.Image) (*entity.EmotionResult, error)
}

type IAnnotator interface {
	Annotate(img image.Image, regions []entity.FaceRegion, label string) (image.Image, error)
}

// ILease guards a device across processes.
type ILease interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Refresh(ctx context.Context, key, token string, ttl time.Duration) error
	Release(ctx context.Context, key, token string) error
}

type IEmotionService interface {
	RunSession(ctx context.Context, req SessionRequest) (entity.SessionOutcome, error)
	Catalog() *emotion.SuggestionCatalog
}

type SessionRequest struct {
	// Params falls back to the service default when zero.
	Params entity.DetectionParams
	// GrayscaleCrop feeds the classifier a grey crop expanded back to RGB.
	GrayscaleCrop bool
	Observer      FrameObserver
}

type FrameEvent struct {
	SessionID string
	Frame     entity.Frame
	Regions   []entity.FaceRegion
	Emotion   string
	State     string
}

type FrameObserver func(FrameEvent)

type emotionService struct {
	log           *logrus.Logger
	source        IFrameSource
	locator       IFaceLocator
	classifier    IEmotionClassifier
	catalog       *emotion.SuggestionCatalog
	utils         utils.IUtils
	defaultParams entity.DetectionParams
}

func NewEmotionService(
	log *logrus.Logger,
	source IFrameSource,
	locator IFaceLocator,
	classifier IEmotionClassifier,
	catalog *emotion.SuggestionCatalog,
	utils utils.IUtils,
	defaultParams entity.DetectionParams,
) IEmotionService {
	return &emotionService{
		log:           log,
		source:        source,
		locator:       locator,
		classifier:    classifier,
		catalog:       catalog,
		utils:         utils,
		defaultParams: defaultParams,
	}
}

func (s *emotionService) Catalog() *emotion.SuggestionCatalog {
	return s.catalog
}
