package utils

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestCropImage(t *testing.T) {
	req := require.New(t)
	u := New()

	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	src.Set(12, 7, color.RGBA{R: 255, A: 255})

	crop, err := u.CropImage(src, image.Rect(10, 5, 20, 15))
	req.NoError(err)
	req.Equal(image.Rect(0, 0, 10, 10), crop.Bounds())

	r, _, _, _ := crop.At(2, 2).RGBA()
	req.Equal(uint32(0xffff), r)

	clipped, err := u.CropImage(src, image.Rect(35, 25, 60, 60))
	req.NoError(err)
	req.Equal(image.Rect(0, 0, 5, 5), clipped.Bounds())

	_, err = u.CropImage(src, image.Rect(100, 100, 120, 120))
	req.ErrorIs(err, ErrEmptyCrop)
}

func TestEncodeDecodeJPEG(t *testing.T) {
	req := require.New(t)
	u := New()

	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	data, err := u.EncodeJPEG(src)
	req.NoError(err)
	req.Equal([]byte{0xFF, 0xD8}, data[:2])

	img, err := u.DecodeImage(data)
	req.NoError(err)
	req.Equal(src.Bounds(), img.Bounds())
}

func TestNewULIDFromTimestamp(t *testing.T) {
	req := require.New(t)
	now := time.Now()

	id, err := New().NewULIDFromTimestamp(now)
	req.NoError(err)

	parsed, err := ulid.Parse(id)
	req.NoError(err)
	req.Equal(ulid.Timestamp(now), parsed.Time())
}

func TestGrayscaleRGB(t *testing.T) {
	req := require.New(t)

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	out := New().GrayscaleRGB(src)
	req.Equal(src.Bounds(), out.Bounds())

	r, g, b, _ := out.At(0, 0).RGBA()
	req.Equal(r, g)
	req.Equal(g, b)
}
