package utils

import (
	"bytes"
	"crypto/rand"
	"errors"
	"image"
	"image/draw"
	"image/jpeg"
	"time"

	"github.com/oklog/ulid/v2"
)

var ErrEmptyCrop = errors.New("crop region is empty")

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	CropImage(img image.Image, region image.Rectangle) (image.Image, error)
	GrayscaleRGB(img image.Image) image.Image
	EncodeJPEG(img image.Image) ([]byte, error)
	DecodeImage(data []byte) (image.Image, error)
}

type utils struct {
	jpegQuality int
}

func New() IUtils {
	return &utils{
		jpegQuality: 90,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// CropImage copies region out of img into a fresh RGBA whose origin is (0,0).
// The region is intersected with the image bounds first.
func (u *utils) CropImage(img image.Image, region image.Rectangle) (image.Image, error) {
	if img == nil {
		return nil, ErrEmptyCrop
	}
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, ErrEmptyCrop
	}

	dst := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(dst, dst.Bounds(), img, region.Min, draw.Src)
	return dst, nil
}

// GrayscaleRGB drops colour information but keeps a three channel image, the
// input shape the emotion models were trained on.
func (u *utils) GrayscaleRGB(img image.Image) image.Image {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)

	rgb := image.NewRGBA(b)
	draw.Draw(rgb, b, gray, b.Min, draw.Src)
	return rgb
}

func (u *utils) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: u.jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (u *utils) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}
