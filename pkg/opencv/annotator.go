package opencv

import (
	"HealGolang/internal/entity"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	boxColor   = color.RGBA{R: 255, A: 255}
	labelColor = color.RGBA{G: 255, A: 255}
)

type Annotator struct{}

func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate draws a red box around every region and, when label is set, the
// label in green above the first one. img itself is left untouched.
func (a *Annotator) Annotate(img image.Image, regions []entity.FaceRegion, label string) (image.Image, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	for _, r := range regions {
		gocv.Rectangle(&mat, r.Rect(), boxColor, 2)
	}

	if label != "" && len(regions) > 0 {
		at := image.Pt(regions[0].X, regions[0].Y-10)
		if at.Y < 15 {
			at.Y = regions[0].Y + regions[0].Height + 25
		}
		gocv.PutText(&mat, label, at, gocv.FontHersheySimplex, 0.9, labelColor, 2)
	}

	return mat.ToImage()
}
