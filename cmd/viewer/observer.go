package main

import (
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/pkg/opencv"
	"context"
	"image"

	"github.com/sirupsen/logrus"
)

type previewer interface {
	Show(img image.Image) (int, error)
}

type counter interface {
	Add(n int) error
}

// newObserver draws each frame with its face boxes and cancels the session
// when q is pressed. screen may be nil for headless runs.
func newObserver(screen previewer, annotator emotionService.IAnnotator, frames counter, cancel context.CancelFunc, logger *logrus.Logger) emotionService.FrameObserver {
	return func(ev emotionService.FrameEvent) {
		frames.Add(1)
		if screen == nil {
			return
		}

		img, err := annotator.Annotate(ev.Frame.Image, ev.Regions, ev.Emotion)
		if err != nil {
			logger.WithField("frame", ev.Frame.Index).Warnf("annotate failed: %v", err)
			img = ev.Frame.Image
		}

		key, err := screen.Show(img)
		if err != nil {
			logger.WithField("frame", ev.Frame.Index).Warnf("preview failed: %v", err)
			return
		}
		if key == opencv.KeyQuit || key == 'Q' {
			cancel()
		}
	}
}
