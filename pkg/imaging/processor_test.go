package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize_DownscalesAndEncodesJPEG(t *testing.T) {
	res, err := Normalize(pngBytes(t, 400, 200), 100)
	require.NoError(t, err)

	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 50, res.Height)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
}

func TestNormalize_KeepsSmallImages(t *testing.T) {
	res, err := Normalize(pngBytes(t, 40, 30), 100)
	require.NoError(t, err)
	assert.Equal(t, 40, res.Width)
	assert.Equal(t, 30, res.Height)

	_, err = jpeg.Decode(bytes.NewReader(res.Data))
	assert.NoError(t, err)
}

func TestNormalize_RejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image"), 100)
	assert.Error(t, err)

	_, err = Normalize(nil, 100)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestDecodeBase64(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	enc := base64.StdEncoding.EncodeToString(raw)

	got, err := DecodeBase64(enc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DecodeBase64("data:image/png;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = DecodeBase64("data:text/plain,hello")
	assert.Error(t, err)

	_, err = DecodeBase64("%%%")
	assert.Error(t, err)

	_, err = DecodeBase64("  ")
	assert.ErrorIs(t, err, ErrEmptyImage)
}
