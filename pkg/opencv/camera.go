package opencv

import (
	"HealGolang/internal/api/emotion"
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/internal/entity"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	"golang.org/x/time/rate"
)

type CameraConfig struct {
	// Device is a camera index such as "0" or a path or URL gocv can open.
	Device string
	MaxFPS float64
}

type cameraSource struct {
	cfg CameraConfig
	log *logrus.Logger
}

func NewCameraSource(cfg CameraConfig, log *logrus.Logger) emotionService.IFrameSource {
	return &cameraSource{cfg: cfg, log: log}
}

func deviceID(device string) interface{} {
	if id, err := strconv.Atoi(device); err == nil {
		return id
	}
	return device
}

func (c *cameraSource) Open(ctx context.Context) (emotionService.IFrameStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock, ok := devices.TryLock(c.cfg.Device)
	if !ok {
		return nil, fmt.Errorf("%w: camera %s is in use", emotion.ErrDeviceUnavailable, c.cfg.Device)
	}

	capture, err := gocv.OpenVideoCapture(deviceID(c.cfg.Device))
	if err != nil {
		unlock()
		return nil, fmt.Errorf("%w: %v", emotion.ErrDeviceUnavailable, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		unlock()
		return nil, fmt.Errorf("%w: camera %s could not be opened", emotion.ErrDeviceUnavailable, c.cfg.Device)
	}

	limit := rate.Inf
	if c.cfg.MaxFPS > 0 {
		limit = rate.Limit(c.cfg.MaxFPS)
	}

	c.log.WithField("device", c.cfg.Device).Debug("Camera opened")

	return &cameraStream{
		capture: capture,
		mat:     gocv.NewMat(),
		unlock:  unlock,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

type cameraStream struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	unlock  func()
	limiter *rate.Limiter
	index   int
	closed  bool
}

func (s *cameraStream) Next(ctx context.Context) (entity.Frame, error) {
	if s.closed {
		return entity.Frame{}, io.EOF
	}
	if err := s.limiter.Wait(ctx); err != nil {
		<-ctx.Done()
		return entity.Frame{}, ctx.Err()
	}

	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		return entity.Frame{}, io.EOF
	}

	img, err := s.mat.ToImage()
	if err != nil {
		return entity.Frame{}, fmt.Errorf("convert frame %d: %w", s.index, err)
	}

	frame := entity.Frame{Index: s.index, Image: img, CapturedAt: time.Now()}
	s.index++
	return frame, nil
}

func (s *cameraStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.capture.Close()
	s.mat.Close()
	s.unlock()
	return err
}
