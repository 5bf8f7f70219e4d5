package converter

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAlpha(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"nrgba", image.NewNRGBA(rect), true},
		{"rgba", image.NewRGBA(rect), true},
		{"rgba64", image.NewRGBA64(rect), true},
		{"gray", image.NewGray(rect), false},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), false},
		{"nycbcra", image.NewNYCbCrA(rect, image.YCbCrSubsampleRatio420), true},
		{"cmyk", image.NewCMYK(rect), false},
		{"opaque palette", image.NewPaletted(rect, color.Palette{color.Black, color.White}), false},
		{"transparent palette", image.NewPaletted(rect, color.Palette{color.Transparent, color.White}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAlpha(tt.img))
		})
	}
}

func TestFlatten(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	src.SetNRGBA(10, 10, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(11, 10, color.NRGBA{B: 255, A: 128})

	out := Flatten(src, color.RGBA{R: 0, G: 255, B: 0, A: 0})

	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, out.RGBAAt(2, 1), "fully transparent pixel takes the background")

	mixed := out.RGBAAt(1, 0)
	assert.Equal(t, uint8(255), mixed.A)
	assert.InDelta(t, 128, mixed.B, 2)
	assert.InDelta(t, 127, mixed.G, 2)
	assert.True(t, out.Opaque())
}

func TestNormalizeKeepsOpaqueImages(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	assert.Same(t, gray, Normalize(gray, White))

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	_, ok := Normalize(nrgba, White).(*image.RGBA)
	assert.True(t, ok)
}
