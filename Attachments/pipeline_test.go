package Attachments

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

func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func decodeWidth(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessDownscalesWideImages(t *testing.T) {
	out, err := Process(encodeTestImage(t, 2400, 1200))
	require.NoError(t, err)

	w, h := decodeWidth(t, out)
	assert.Equal(t, MaxWidth, w)
	assert.Equal(t, 600, h)
}

func TestProcessNeverUpscales(t *testing.T) {
	out, err := Process(encodeTestImage(t, 640, 480))
	require.NoError(t, err)

	w, h := decodeWidth(t, out)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestProcessAcceptsPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := Process(buf.Bytes())
	require.NoError(t, err)

	// Output is always JPEG regardless of the capture format.
	_, err = jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := Process([]byte("not an image"))
	assert.Error(t, err)
}
