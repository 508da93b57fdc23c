package opencv

import (
	"HealGolang/internal/entity"
	"HealGolang/pkg/utils"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

var devices = utils.Devices

const DefaultCascadePath = "data/haarcascade_frontalface_default.xml"

// CascadeLocator finds frontal faces with a Haar cascade. The cascade is not
// safe for concurrent use so calls are serialised.
type CascadeLocator struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
}

func NewCascadeLocator(path string) (*CascadeLocator, error) {
	if path == "" {
		path = DefaultCascadePath
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("error reading cascade file: %s", path)
	}

	return &CascadeLocator{classifier: classifier}, nil
}

// Locate runs detection on the greyscale version of the frame. Regions are
// returned in detector order.
func (l *CascadeLocator) Locate(frame entity.Frame, params entity.DetectionParams) []entity.FaceRegion {
	if frame.Image == nil {
		return nil
	}

	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		return nil
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	l.mu.Lock()
	rects := l.classifier.DetectMultiScaleWithParams(gray, params.ScaleFactor, params.MinNeighbors, 0, params.MinSize(), image.Point{})
	l.mu.Unlock()

	regions := make([]entity.FaceRegion, 0, len(rects))
	for _, r := range rects {
		regions = append(regions, entity.RegionFromRect(r))
	}
	return regions
}

func (l *CascadeLocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.classifier.Close()
}
