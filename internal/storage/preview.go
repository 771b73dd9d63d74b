package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const previewMaxDim = 480

// IsPreviewable reports whether a deliverable gets a webp preview.
func IsPreviewable(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}

// MakePreview scales an image deliverable down to a bounded webp preview.
func MakePreview(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode preview source: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > previewMaxDim || h > previewMaxDim {
		if w >= h {
			h = h * previewMaxDim / w
			w = previewMaxDim
		} else {
			w = w * previewMaxDim / h
			h = previewMaxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}

		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
