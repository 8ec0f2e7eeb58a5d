package Attachments

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Photos are shrunk before they ever enter a draft: smaller uploads, smaller
// records, faster emails. Matches the client-side canvas resize the drivers are
// used to (max width 1200, JPEG quality 70).
const (
	MaxWidth    = 1200
	JPEGQuality = 70
)

// Process decodes a captured photo, downscales it to MaxWidth preserving the
// aspect ratio (never upscales), and re-encodes it as JPEG.
func Process(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %v", err)
	}
	if img.Bounds().Dx() > MaxWidth {
		img = imaging.Resize(img, MaxWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode photo: %v", err)
	}
	return buf.Bytes(), nil
}
