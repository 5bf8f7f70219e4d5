package fixtures

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func TestSolidWebPDecodes(t *testing.T) {
	want := color.NRGBA{R: 10, G: 200, B: 30, A: 128}
	img, err := webp.Decode(bytes.NewReader(SolidWebP(3, 2, want)))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, want, color.NRGBAModel.Convert(img.At(2, 1)))
}

func TestSolidWebPConfig(t *testing.T) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(SolidWebP(17, 9, color.NRGBA{A: 255})))
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, 17, cfg.Width)
	assert.Equal(t, 9, cfg.Height)
}
