package entity

import (
	"image"
	"strings"
	"time"
)

type Emotion string

const (
	Happy    Emotion = "happy"
	Surprise Emotion = "surprise"
	Neutral  Emotion = "neutral"
	Disgust  Emotion = "disgust"
	Sad      Emotion = "sad"
	Angry    Emotion = "angry"
	Fear     Emotion = "fear"
)

// UnknownEmotion is what the web boundary reports when nothing was resolved.
const UnknownEmotion = "Unknown"

var KnownEmotions = []Emotion{Happy, Surprise, Neutral, Disgust, Sad, Angry, Fear}

// ParseEmotion normalizes a classifier label. ok is false for labels outside KnownEmotions.
func ParseEmotion(label string) (Emotion, bool) {
	e := Emotion(strings.ToLower(strings.TrimSpace(label)))
	for _, known := range KnownEmotions {
		if e == known {
			return e, true
		}
	}
	return e, false
}

type Frame struct {
	Index      int
	Image      image.Image
	CapturedAt time.Time
}

func (f Frame) Bounds() image.Rectangle {
	if f.Image == nil {
		return image.Rectangle{}
	}
	return f.Image.Bounds()
}

type FaceRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func RegionFromRect(r image.Rectangle) FaceRegion {
	return FaceRegion{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func (r FaceRegion) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r FaceRegion) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// ClampTo intersects the region with bounds. The result may be invalid when
// the region lies entirely outside.
func (r FaceRegion) ClampTo(bounds image.Rectangle) FaceRegion {
	return RegionFromRect(r.Rect().Intersect(bounds))
}

type EmotionResult struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Scores          map[string]float64 `json:"emotion"`
}

// Recognized reports whether the dominant label is one of KnownEmotions.
func (r EmotionResult) Recognized() bool {
	_, ok := ParseEmotion(r.DominantEmotion)
	return ok
}

func (r EmotionResult) Score(e Emotion) float64 {
	for k, v := range r.Scores {
		if strings.EqualFold(k, string(e)) {
			return v
		}
	}
	return 0
}

// Argmax returns the highest scoring label, used when a backend reports
// scores without naming the dominant emotion.
func (r EmotionResult) Argmax() string {
	best, bestScore := "", -1.0
	for k, v := range r.Scores {
		if v > bestScore || (v == bestScore && k < best) {
			best, bestScore = k, v
		}
	}
	return best
}

const (
	ReasonStreamEnded         = "stream ended"
	ReasonClassificationError = "classification error"
	ReasonCancelled           = "cancelled"
)

type SessionStatus string

const (
	StatusResolved   SessionStatus = "resolved"
	StatusUnresolved SessionStatus = "unresolved"
)

// SessionOutcome is either Resolved (Emotion, Message set) or Unresolved
// (Reason set). Build it with Resolved or Unresolved only.
type SessionOutcome struct {
	Status  SessionStatus `json:"status"`
	Emotion string        `json:"emotion,omitempty"`
	Message string        `json:"message,omitempty"`
	Reason  string        `json:"reason,omitempty"`
}

func Resolved(emotion, message string) SessionOutcome {
	return SessionOutcome{Status: StatusResolved, Emotion: emotion, Message: message}
}

func Unresolved(reason string) SessionOutcome {
	return SessionOutcome{Status: StatusUnresolved, Reason: reason}
}

func (o SessionOutcome) IsResolved() bool {
	return o.Status == StatusResolved
}

type DetectionParams struct {
	ScaleFactor  float64 `json:"scale_factor" validate:"gt=1"`
	MinNeighbors int     `json:"min_neighbors" validate:"gte=0"`
	MinWidth     int     `json:"min_width" validate:"gte=0"`
	MinHeight    int     `json:"min_height" validate:"gte=0"`
}

func (p DetectionParams) MinSize() image.Point {
	return image.Pt(p.MinWidth, p.MinHeight)
}

var (
	// LaxDetection matches the web endpoint call site.
	LaxDetection = DetectionParams{ScaleFactor: 1.3, MinNeighbors: 5}
	// StrictDetection matches the interactive viewer call site.
	StrictDetection = DetectionParams{ScaleFactor: 1.1, MinNeighbors: 5, MinWidth: 30, MinHeight: 30}
)

type DetectionProfile string

const (
	ProfileLax    DetectionProfile = "lax"
	ProfileStrict DetectionProfile = "strict"
)

func (p DetectionProfile) Params() (DetectionParams, bool) {
	switch p {
	case ProfileLax:
		return LaxDetection, true
	case ProfileStrict:
		return StrictDetection, true
	default:
		return DetectionParams{}, false
	}
}
