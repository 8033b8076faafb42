// Package imaging normalizes uploaded product images to the catalog's fixed
// 800×600 canvas.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// Canvas and encoding parameters of the normalized output.
const (
	CanvasWidth  = 800
	CanvasHeight = 600
	JPEGQuality  = 85
)

// Normalize converts the raw image to the catalog canvas: transparency is
// flattened onto white, the image is scaled and center-cropped to 800×600
// preserving aspect ratio, and the result is encoded as JPEG at quality 85.
// Sources wider than 4:3 keep their full height and lose width; taller
// sources keep their full width and lose height. Re-normalizing an 800×600
// output yields the same canvas again, modulo re-encoding.
func Normalize(raw io.Reader) ([]byte, error) {
	src, err := imaging.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	flattened := flattenOnWhite(src)
	canvas := imaging.Fill(flattened, CanvasWidth, CanvasHeight, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// flattenOnWhite composites the source over a white background so PNG
// transparency does not turn black in the JPEG output.
func flattenOnWhite(src image.Image) image.Image {
	bounds := src.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(background, src, image.Pt(0, 0), 1.0)
}
