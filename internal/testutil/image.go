package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CreateTestImage returns a solid image of the given size.
func CreateTestImage(width, height int, backgroundColor color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)
	return img
}

// CreateProductImage draws a labelled placeholder picture of a product.
func CreateProductImage(label string, width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	frame := image.Rect(width/8, height/8, width-width/8, height-height/8)
	draw.Draw(img, frame, &image.Uniform{color.RGBA{R: 60, G: 140, B: 60, A: 255}}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Src: &image.Uniform{color.Black}, Face: face}
	textWidth := font.MeasureString(face, label).Ceil()
	drawer.Dot = fixed.P((width-textWidth)/2, height/16+face.Metrics().Height.Ceil()/2)
	drawer.DrawString(label)

	return img
}

// SaveImage encodes img to path as PNG, or JPEG for .jpg/.jpeg names.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()

	require.NoError(t, EncodeImage(img, path), "Failed to save image %s", path)
}

// EncodeImage writes img to path as PNG, or JPEG for .jpg/.jpeg names.
func EncodeImage(img image.Image, path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	file, err := os.Create(path) //nolint:gosec // G304: Test file creation with controlled path
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(file, img)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

// LoadImage decodes the image at path.
func LoadImage(t *testing.T, path string) image.Image {
	t.Helper()

	file, err := os.Open(path) //nolint:gosec // G304: Test file reading with controlled path
	require.NoError(t, err, "Failed to open image %s", path)
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	require.NoError(t, err, "Failed to decode image %s", path)
	return img
}
