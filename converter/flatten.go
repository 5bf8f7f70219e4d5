package converter

import (
	"image"
	"image/color"
	"image/draw"
)

// White is the background transparent pixels are composited onto unless
// configured otherwise.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// HasAlpha reports whether the colour model of img carries an alpha channel.
// Models it does not know are asked through the image's Opaque method.
func HasAlpha(img image.Image) bool {
	switch m := img.ColorModel().(type) {
	case color.Palette:
		for _, c := range m {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	default:
		switch m {
		case color.NRGBAModel, color.NRGBA64Model,
			color.RGBAModel, color.RGBA64Model,
			color.AlphaModel, color.Alpha16Model,
			color.NYCbCrAModel:
			return true
		case color.GrayModel, color.Gray16Model,
			color.YCbCrModel, color.CMYKModel:
			return false
		}
		if o, ok := img.(interface{ Opaque() bool }); ok {
			return !o.Opaque()
		}
		return false
	}
}

// Flatten composites img over an opaque bg and returns an RGBA image whose
// bounds start at the origin.
func Flatten(img image.Image, bg color.RGBA) *image.RGBA {
	bg.A = 0xff
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Normalize flattens img only when it has an alpha channel.
func Normalize(img image.Image, bg color.RGBA) image.Image {
	if HasAlpha(img) {
		return Flatten(img, bg)
	}
	return img
}
