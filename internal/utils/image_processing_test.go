package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/rpgen/internal/testutil"
)

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("a/b/photo.JPG"))
	assert.True(t, IsSupportedImage("scheme.png"))
	assert.False(t, IsSupportedImage("passport.pdf"))
	assert.False(t, IsSupportedImage("noext"))
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(testutil.CreateTempDir(t), "ga9999.png")
	testutil.SaveImage(t, testutil.CreateTestImage(300, 150, color.White), path)

	img, meta, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, "PNG", meta.Format)
	assert.Equal(t, 2.0, meta.AspectRatio)
	assert.Positive(t, meta.SizeBytes)
}

func TestLoadImageErrors(t *testing.T) {
	_, _, err := LoadImage("")
	var procErr *ImageProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "load", procErr.Operation)

	_, _, err = LoadImage("picture.pdf")
	assert.Error(t, err)

	_, _, err = LoadImage(filepath.Join(testutil.CreateTempDir(t), "missing.png"))
	assert.Error(t, err)

	broken := filepath.Join(testutil.CreateTempDir(t), "broken.png")
	testutil.WriteFile(t, broken, []byte("not an image"))
	_, _, err = LoadImage(broken)
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "decode", procErr.Operation)
}

func TestResizeImage(t *testing.T) {
	constraints := ImageConstraints{MaxWidth: 100, MaxHeight: 100, MinWidth: 1, MinHeight: 1}

	small := testutil.CreateTestImage(80, 40, color.White)
	out, err := ResizeImage(small, constraints)
	require.NoError(t, err)
	assert.Equal(t, small, out)

	large := testutil.CreateTestImage(400, 200, color.White)
	out, err = ResizeImage(large, constraints)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())

	_, err = ResizeImage(nil, constraints)
	assert.Error(t, err)
}

func TestPrepareImageKeepsJPEG(t *testing.T) {
	path := filepath.Join(testutil.CreateTempDir(t), "photo.jpg")
	testutil.SaveImage(t, testutil.CreateTestImage(64, 128, color.Gray{Y: 128}), path)

	emb, err := PrepareImage(path, DefaultImageConstraints())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", emb.Ext)
	assert.Equal(t, 64, emb.Width)
	assert.Equal(t, 128, emb.Height)

	_, err = jpeg.Decode(bytes.NewReader(emb.Data))
	assert.NoError(t, err)
}

func TestPrepareImageDownscalesToPNG(t *testing.T) {
	path := filepath.Join(testutil.CreateTempDir(t), "big.png")
	testutil.SaveImage(t, testutil.CreateTestImage(500, 250, color.White), path)

	emb, err := PrepareImage(path, ImageConstraints{MaxWidth: 200, MaxHeight: 200, MinWidth: 1, MinHeight: 1})
	require.NoError(t, err)
	assert.Equal(t, "png", emb.Ext)
	assert.Equal(t, 200, emb.Width)
	assert.Equal(t, 100, emb.Height)

	cfg, err := png.DecodeConfig(bytes.NewReader(emb.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Config{ColorModel: cfg.ColorModel, Width: 200, Height: 100}, cfg)
}

func TestFitLongSide(t *testing.T) {
	w, h := FitLongSide(400, 200, 6)
	assert.InDelta(t, 6.0, w, 1e-9)
	assert.InDelta(t, 3.0, h, 1e-9)

	w, h = FitLongSide(100, 400, 6)
	assert.InDelta(t, 1.5, w, 1e-9)
	assert.InDelta(t, 6.0, h, 1e-9)

	w, h = FitLongSide(300, 300, 6)
	assert.InDelta(t, 6.0, w, 1e-9)
	assert.InDelta(t, 6.0, h, 1e-9)

	w, h = FitLongSide(0, 10, 6)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
