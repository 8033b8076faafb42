package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidPNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	return pngBytes(t, img)
}

func paintPNG(t *testing.T, width, height int, at func(x, y int) color.NRGBA) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, at(x, y))
		}
	}
	return pngBytes(t, img)
}

var (
	red    = color.NRGBA{R: 255, A: 255}
	green  = color.NRGBA{G: 255, A: 255}
	blue   = color.NRGBA{B: 255, A: 255}
	yellow = color.NRGBA{R: 255, G: 255, A: 255}
)

// requireHue checks the dominant channel of one pixel with thresholds loose
// enough to survive JPEG re-encoding.
func requireHue(t *testing.T, img image.Image, x, y int, want string) {
	t.Helper()

	r, g, b, _ := img.At(x, y).RGBA()
	r8, g8, b8 := r>>8, g>>8, b>>8

	var ok bool
	switch want {
	case "red":
		ok = r8 > 180 && g8 < 90 && b8 < 90
	case "green":
		ok = g8 > 180 && r8 < 90 && b8 < 90
	case "blue":
		ok = b8 > 180 && r8 < 90 && g8 < 90
	}
	require.True(t, ok, "pixel (%d,%d) = (%d,%d,%d), want %s", x, y, r8, g8, b8, want)
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

// A 1600×900 source is wider than 4:3, so the full height must survive and
// the width must be cropped: yellow side margins (10% each, under the 12.5%
// the crop removes per side) disappear while the red top and blue bottom
// bands remain.
func TestNormalizeWideSourceCropsWidth(t *testing.T) {
	src := paintPNG(t, 1600, 900, func(x, y int) color.NRGBA {
		switch {
		case x < 160 || x >= 1440:
			return yellow
		case y < 90:
			return red
		case y >= 810:
			return blue
		default:
			return green
		}
	})

	out, err := Normalize(bytes.NewReader(src))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, CanvasWidth, img.Bounds().Dx())
	assert.Equal(t, CanvasHeight, img.Bounds().Dy())

	requireHue(t, img, 400, 20, "red")
	requireHue(t, img, 400, 580, "blue")
	requireHue(t, img, 10, 300, "green")
	requireHue(t, img, 790, 300, "green")
}

// A 600×900 source is taller than 4:3, so the full width must survive and
// the height must be cropped: yellow top/bottom margins (20% each, under the
// 25% the crop removes per side) disappear while the red left and blue right
// bands remain.
func TestNormalizeTallSourceCropsHeight(t *testing.T) {
	src := paintPNG(t, 600, 900, func(x, y int) color.NRGBA {
		switch {
		case y < 180 || y >= 720:
			return yellow
		case x < 60:
			return red
		case x >= 540:
			return blue
		default:
			return green
		}
	})

	out, err := Normalize(bytes.NewReader(src))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, CanvasWidth, img.Bounds().Dx())
	assert.Equal(t, CanvasHeight, img.Bounds().Dy())

	requireHue(t, img, 10, 300, "red")
	requireHue(t, img, 790, 300, "blue")
	requireHue(t, img, 400, 10, "green")
	requireHue(t, img, 400, 590, "green")
}

func TestNormalizeFlattensTransparencyOntoWhite(t *testing.T) {
	src := solidPNG(t, 800, 600, color.NRGBA{A: 0})

	out, err := Normalize(bytes.NewReader(src))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	r, g, b, _ := img.At(400, 300).RGBA()
	// JPEG encoding leaves white a hair off 0xffff.
	assert.Greater(t, r, uint32(0xf000))
	assert.Greater(t, g, uint32(0xf000))
	assert.Greater(t, b, uint32(0xf000))
}

func TestNormalizeIsIdempotentOnCanvasSize(t *testing.T) {
	src := solidPNG(t, 1024, 768, color.NRGBA{R: 90, G: 160, B: 90, A: 255})

	first, err := Normalize(bytes.NewReader(src))
	require.NoError(t, err)

	second, err := Normalize(bytes.NewReader(first))
	require.NoError(t, err)

	img := decodeJPEG(t, second)
	assert.Equal(t, CanvasWidth, img.Bounds().Dx())
	assert.Equal(t, CanvasHeight, img.Bounds().Dy())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
