package opencv

import (
	"HealGolang/internal/entity"
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode"

	"gocv.io/x/gocv"
)

const KeyQuit = 'q'

// Window is a native preview window. All calls must come from the same
// goroutine, which on macOS has to be the main one.
type Window struct {
	window *gocv.Window
}

func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

// Show displays img and returns the key pressed within one millisecond, or
// -1 when none was.
func (w *Window) Show(img image.Image) (int, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return -1, err
	}
	defer mat.Close()

	w.window.IMShow(mat)
	return w.window.WaitKey(1), nil
}

// ShowSummary renders the session outcome on a plain panel and blocks until a
// key is pressed or the window is closed.
func (w *Window) ShowSummary(outcome entity.SessionOutcome) {
	panel := gocv.NewMatWithSize(200, 640, gocv.MatTypeCV8UC3)
	defer panel.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	lines := SummaryLines(outcome)
	for i, line := range lines {
		scale := 0.6
		if i == 0 {
			scale = 0.9
		}
		gocv.PutText(&panel, line, image.Pt(20, 50+i*40), gocv.FontHersheySimplex, scale, white, 2)
	}
	gocv.PutText(&panel, "Press any key to close", image.Pt(20, 185), gocv.FontHersheySimplex, 0.45, white, 1)

	w.window.IMShow(panel)
	for w.window.IsOpen() {
		if w.window.WaitKey(100) >= 0 {
			return
		}
	}
}

func (w *Window) Close() error {
	return w.window.Close()
}

// SummaryLines is the panel text. Hershey fonts only cover ASCII so
// everything else is dropped.
func SummaryLines(outcome entity.SessionOutcome) []string {
	if !outcome.IsResolved() {
		return []string{
			"No emotion detected",
			asciiOnly(fmt.Sprintf("Reason: %s", outcome.Reason)),
		}
	}

	lines := []string{asciiOnly(fmt.Sprintf("Detected Emotion: %s", strings.ToUpper(outcome.Emotion)))}
	return append(lines, wrap(asciiOnly(outcome.Message), 60)...)
}

func asciiOnly(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			if r == '’' {
				return '\''
			}
			if r == '—' {
				return '-'
			}
			return -1
		}
		return r
	}, s))
}

func wrap(s string, width int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(s) {
		if current != "" && len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		if current != "" {
			current += " "
		}
		current += word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
