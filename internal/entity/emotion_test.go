package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEmotion(t *testing.T) {
	req := require.New(t)

	e, ok := ParseEmotion("  HAPPY ")
	req.True(ok)
	req.Equal(Happy, e)

	e, ok = ParseEmotion("contempt")
	req.False(ok)
	req.Equal(Emotion("contempt"), e)
}

func TestFaceRegion_ClampTo(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		description string
		region      FaceRegion
		want        FaceRegion
		valid       bool
	}{
		{"inside stays untouched", FaceRegion{10, 10, 20, 20}, FaceRegion{10, 10, 20, 20}, true},
		{"overflow is cut at the edge", FaceRegion{90, 70, 30, 30}, FaceRegion{90, 70, 10, 10}, true},
		{"outside becomes invalid", FaceRegion{200, 200, 10, 10}, FaceRegion{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got := tt.region.ClampTo(bounds)
			require.Equal(t, tt.valid, got.Valid())
			if tt.valid {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEmotionResult(t *testing.T) {
	req := require.New(t)
	res := EmotionResult{
		DominantEmotion: "Sad",
		Scores:          map[string]float64{"sad": 0.7, "neutral": 0.2, "contempt": 0.1},
	}

	req.True(res.Recognized())
	req.InDelta(0.7, res.Score(Sad), 1e-9)
	req.InDelta(0.1, res.Scores["contempt"], 1e-9)
	req.Equal("sad", res.Argmax())
	req.Zero(res.Score(Fear))
}

func TestSessionOutcome(t *testing.T) {
	req := require.New(t)

	ok := Resolved("happy", "msg")
	req.True(ok.IsResolved())
	req.Empty(ok.Reason)

	ko := Unresolved(ReasonCancelled)
	req.False(ko.IsResolved())
	req.Equal("cancelled", ko.Reason)
	req.Empty(ko.Emotion)
}

func TestDetectionProfile_Params(t *testing.T) {
	req := require.New(t)

	lax, ok := ProfileLax.Params()
	req.True(ok)
	req.Equal(image.Pt(0, 0), lax.MinSize())

	strict, ok := ProfileStrict.Params()
	req.True(ok)
	req.Equal(image.Pt(30, 30), strict.MinSize())
	req.Less(strict.ScaleFactor, lax.ScaleFactor)

	_, ok = DetectionProfile("loose").Params()
	req.False(ok)
}
