package emotionService

import (
	"HealGolang/internal/api/emotion"
	"HealGolang/internal/entity"
	"HealGolang/pkg/log"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

type sessionState int

const (
	stateSearching sessionState = iota
	stateResolved
	stateExhausted
)

func (s sessionState) String() string {
	switch s {
	case stateResolved:
		return "resolved"
	case stateExhausted:
		return "exhausted"
	default:
		return "searching"
	}
}

// session is one run from searching to a terminal state. It is never reused.
type session struct {
	svc      *emotionService
	req      SessionRequest
	id       string
	log      *logrus.Entry
	stream   IFrameStream
	released bool

	state  sessionState
	frames int
	result *entity.EmotionResult
	reason string
}

// RunSession reads frames until the first located face is classified, the
// stream ends, classification fails or ctx is cancelled. Only a device that
// cannot be opened is reported as an error.
func (s *emotionService) RunSession(ctx context.Context, req SessionRequest) (entity.SessionOutcome, error) {
	if req.Params == (entity.DetectionParams{}) {
		req.Params = s.defaultParams
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		id = "unknown"
	}

	sess := &session{
		svc: s,
		req: req,
		id:  id,
		log: log.WithRequestID(ctx).WithFields(log.Fields{
			"session_id":    id,
			"scale_factor":  req.Params.ScaleFactor,
			"min_neighbors": req.Params.MinNeighbors,
		}),
	}

	return sess.run(ctx)
}

func (ss *session) run(ctx context.Context) (entity.SessionOutcome, error) {
	stream, err := ss.svc.source.Open(ctx)
	if err != nil {
		ss.log.WithError(err).Warn("Frame source unavailable")
		if errors.Is(err, emotion.ErrDeviceUnavailable) {
			return entity.SessionOutcome{}, err
		}
		return entity.SessionOutcome{}, fmt.Errorf("%w: %v", emotion.ErrDeviceUnavailable, err)
	}
	ss.stream = stream
	defer ss.release()

	ss.log.Debug("Detection session started")

	for ss.state == stateSearching {
		ss.step(ctx)
	}

	outcome := ss.outcome()
	ss.log.WithFields(log.Fields{
		"state":   ss.state.String(),
		"frames":  ss.frames,
		"emotion": outcome.Emotion,
		"reason":  outcome.Reason,
	}).Info("Detection session finished")

	return outcome, nil
}

// step handles one frame. Cancellation is honoured between the read, the
// detection and the classification.
func (ss *session) step(ctx context.Context) {
	if ss.cancelled(ctx) {
		return
	}

	frame, err := ss.stream.Next(ctx)
	if err != nil {
		if ctx.Err() != nil {
			ss.exhaust(entity.ReasonCancelled)
			return
		}
		if !errors.Is(err, io.EOF) {
			ss.log.WithError(err).Warn("Frame read failed, treating as end of stream")
		}
		ss.exhaust(entity.ReasonStreamEnded)
		return
	}
	ss.frames++

	if ss.cancelled(ctx) {
		return
	}

	regions := ss.locate(frame)
	if len(regions) == 0 {
		ss.observe(frame, nil, "")
		return
	}

	if ss.cancelled(ctx) {
		return
	}

	// First region only. A failure on it ends the session; later regions and
	// frames are not tried.
	result, err := ss.classify(ctx, frame, regions[0])
	if err != nil {
		if ctx.Err() != nil {
			ss.exhaust(entity.ReasonCancelled)
		} else {
			ss.log.WithError(err).WithField("frame", frame.Index).Warn("Emotion classification failed")
			ss.exhaust(entity.ReasonClassificationError)
		}
		ss.release()
		ss.observe(frame, regions[:1], "")
		return
	}

	ss.result = result
	ss.state = stateResolved
	ss.release()
	ss.observe(frame, regions[:1], result.DominantEmotion)
}

func (ss *session) locate(frame entity.Frame) []entity.FaceRegion {
	bounds := frame.Bounds()
	found := ss.svc.locator.Locate(frame, ss.req.Params)

	regions := make([]entity.FaceRegion, 0, len(found))
	for _, r := range found {
		r = r.ClampTo(bounds)
		if r.Valid() {
			regions = append(regions, r)
		}
	}
	return regions
}

func (ss *session) classify(ctx context.Context, frame entity.Frame, region entity.FaceRegion) (*entity.EmotionResult, error) {
	face, err := ss.svc.utils.CropImage(frame.Image, region.Rect())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", emotion.ErrClassification, err)
	}
	if ss.req.GrayscaleCrop {
		face = ss.svc.utils.GrayscaleRGB(face)
	}

	result, err := ss.svc.classifier.Classify(ctx, face)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, emotion.ErrClassification
	}
	if result.DominantEmotion == "" {
		result.DominantEmotion = result.Argmax()
	}
	if result.DominantEmotion == "" {
		return nil, fmt.Errorf("%w: empty emotion label", emotion.ErrClassification)
	}
	if !result.Recognized() {
		ss.log.WithField("emotion", result.DominantEmotion).Debug("Classifier returned an unrecognized emotion")
	}

	return result, nil
}

func (ss *session) cancelled(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	ss.exhaust(entity.ReasonCancelled)
	return true
}

func (ss *session) exhaust(reason string) {
	ss.state = stateExhausted
	ss.reason = reason
}

func (ss *session) release() {
	if ss.released || ss.stream == nil {
		return
	}
	ss.released = true
	if err := ss.stream.Close(); err != nil {
		ss.log.WithError(err).Warn("Failed to release frame source")
	}
}

func (ss *session) observe(frame entity.Frame, regions []entity.FaceRegion, label string) {
	if ss.req.Observer == nil {
		return
	}
	ss.req.Observer(FrameEvent{
		SessionID: ss.id,
		Frame:     frame,
		Regions:   regions,
		Emotion:   label,
		State:     ss.state.String(),
	})
}

func (ss *session) outcome() entity.SessionOutcome {
	if ss.state == stateResolved {
		label := ss.result.DominantEmotion
		return entity.Resolved(label, ss.svc.catalog.SuggestionFor(label))
	}
	return entity.Unresolved(ss.reason)
}
