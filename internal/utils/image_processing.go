package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ImageProcessingError represents errors that can occur during image processing.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing error in %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error {
	return e.Err
}

// ImageConstraints defines the constraints for image processing.
type ImageConstraints struct {
	MaxWidth  int
	MaxHeight int
	MinWidth  int
	MinHeight int
}

// DefaultImageConstraints returns the pixel limits for pictures embedded in documents.
func DefaultImageConstraints() ImageConstraints {
	return ImageConstraints{
		MaxWidth:  2000,
		MaxHeight: 2000,
		MinWidth:  1,
		MinHeight: 1,
	}
}

// ResizeImage scales an image down to fit the maximum dimensions, preserving
// the aspect ratio. Smaller images are returned unchanged.
func ResizeImage(img image.Image, constraints ImageConstraints) (image.Image, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "resize", Err: errors.New("input image is nil")}
	}
	if err := ValidateImageConstraints(img, constraints); err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() <= constraints.MaxWidth && b.Dy() <= constraints.MaxHeight {
		return img, nil
	}
	return imaging.Fit(img, constraints.MaxWidth, constraints.MaxHeight, imaging.Lanczos), nil
}

// EmbeddedImage is an encoded picture ready to be placed in a document.
type EmbeddedImage struct {
	Data   []byte
	Ext    string
	Width  int
	Height int
}

// PrepareImage loads, orients, downsizes and encodes an image for embedding.
// JPEG sources stay JPEG; everything else is re-encoded as PNG.
func PrepareImage(path string, constraints ImageConstraints) (EmbeddedImage, error) {
	img, meta, err := LoadImage(path)
	if err != nil {
		return EmbeddedImage{}, err
	}
	img, err = ResizeImage(img, constraints)
	if err != nil {
		return EmbeddedImage{}, err
	}

	format, ext := imaging.PNG, "png"
	if meta.Format == imaging.JPEG.String() {
		format, ext = imaging.JPEG, "jpeg"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(90)); err != nil {
		return EmbeddedImage{}, &ImageProcessingError{Operation: "encode", Err: err}
	}

	b := img.Bounds()
	return EmbeddedImage{Data: buf.Bytes(), Ext: ext, Width: b.Dx(), Height: b.Dy()}, nil
}

// FitLongSide scales width×height so that the longer side equals long,
// returning the new width and height.
func FitLongSide(width, height int, long float64) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if width > height {
		return long, long * float64(height) / float64(width)
	}
	return long * float64(width) / float64(height), long
}
