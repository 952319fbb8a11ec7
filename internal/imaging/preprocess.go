package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Preprocessor turns an uploaded product photo into a bounded inline JPEG
// data URI suitable for embedding straight into the catalog document.
// Policy is resize-always: oversized images are scaled down, never rejected,
// and images already within bounds are never scaled up.
type Preprocessor struct {
	MaxDimension int
	JPEGQuality  int
}

func New(maxDimension, jpegQuality int) Preprocessor {
	return Preprocessor{MaxDimension: maxDimension, JPEGQuality: jpegQuality}
}

// Process decodes, scales and re-encodes the image. The only failure mode for
// a syntactically valid image is an encoder error; anything undecodable comes
// back as a decode error for the form layer to surface.
func (p Preprocessor) Process(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := FitWithin(bounds.Dx(), bounds.Dy(), p.MaxDimension)

	out := src
	if width != bounds.Dx() || height != bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Over, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: p.JPEGQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FitWithin computes the largest size with max(w, h) <= limit that preserves
// the source aspect ratio. Sizes already within the limit pass through.
func FitWithin(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}

	if width > height {
		height = height * limit / width
		width = limit
	} else {
		width = width * limit / height
		height = limit
	}

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}
