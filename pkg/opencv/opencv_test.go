package opencv

import (
	"HealGolang/internal/api/emotion"
	"HealGolang/internal/entity"
	"HealGolang/pkg/log"
	"context"
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	req := require.New(t)

	img := image.NewRGBA(image.Rect(0, 0, 120, 100))
	region := entity.FaceRegion{X: 30, Y: 30, Width: 40, Height: 40}

	out, err := NewAnnotator().Annotate(img, []entity.FaceRegion{region}, "happy")
	req.NoError(err)
	req.Equal(img.Bounds(), out.Bounds())

	r, g, b, _ := out.At(30, 50).RGBA()
	req.Greater(r, uint32(0x8000))
	req.Less(g, uint32(0x4000))
	req.Less(b, uint32(0x4000))

	req.Equal(color.RGBA{}, img.RGBAAt(30, 50), "input must not be drawn on")
}

func TestAnnotate_NoRegions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	out, err := NewAnnotator().Annotate(img, nil, "")
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), out.Bounds())
}

func TestCascadeLocator_BlankFrame(t *testing.T) {
	path := os.Getenv("CASCADE_PATH")
	if path == "" {
		path = DefaultCascadePath
	}
	if _, err := os.Stat(path); err != nil {
		t.Skipf("cascade file not available: %v", err)
	}

	locator, err := NewCascadeLocator(path)
	require.NoError(t, err)
	defer locator.Close()

	frame := entity.Frame{Image: image.NewRGBA(image.Rect(0, 0, 160, 120))}
	require.Empty(t, locator.Locate(frame, entity.StrictDetection))
}

func TestNewCascadeLocator_MissingFile(t *testing.T) {
	_, err := NewCascadeLocator("does/not/exist.xml")
	require.Error(t, err)
}

func TestSummaryLines(t *testing.T) {
	req := require.New(t)

	lines := SummaryLines(entity.Resolved("happy", "Keep smiling! Spread your joy today 😊"))
	req.Equal("Detected Emotion: HAPPY", lines[0])
	req.Equal([]string{"Keep smiling! Spread your joy today"}, lines[1:])

	lines = SummaryLines(entity.Resolved("neutral", "Stay calm and keep going, you’re doing fine 🙂"))
	req.Equal("Stay calm and keep going, you're doing fine", lines[1])

	lines = SummaryLines(entity.Unresolved(entity.ReasonCancelled))
	req.Equal([]string{"No emotion detected", "Reason: cancelled"}, lines)
}

func TestWrap(t *testing.T) {
	require.Equal(t, []string{"aaa bbb", "ccc"}, wrap("aaa bbb ccc", 7))
	require.Empty(t, wrap("", 10))
}

func TestCameraSource_OpenFailsWhileDeviceHeld(t *testing.T) {
	req := require.New(t)

	unlock, ok := devices.TryLock("97")
	req.True(ok)
	defer unlock()

	src := NewCameraSource(CameraConfig{Device: "97"}, log.NewLogger())
	_, err := src.Open(context.Background())
	req.ErrorIs(err, emotion.ErrDeviceUnavailable)
	req.Contains(err.Error(), "in use")
}
