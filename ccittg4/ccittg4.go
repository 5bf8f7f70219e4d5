// Package ccittg4 encodes bilevel rasters as CCITT Group 4 fax data, the
// form read by the PDF CCITTFaxDecode filter with /K -1.
package ccittg4

import (
	"bytes"
	"fmt"
	"image"
)

type BitWriter struct {
	buf   bytes.Buffer
	bits  uint8
	count int
}

func (bw *BitWriter) WriteBit(bit uint8) {
	bw.bits = (bw.bits << 1) | (bit & 1)
	bw.count++
	if bw.count == 8 {
		bw.buf.WriteByte(bw.bits)
		bw.bits = 0
		bw.count = 0
	}
}

func (bw *BitWriter) WriteBits(code uint16, length int) {
	for i := length - 1; i >= 0; i-- {
		bw.WriteBit(uint8((code >> i) & 1))
	}
}

func (bw *BitWriter) write(c code) {
	bw.WriteBits(c.bits, c.n)
}

// Flush pads the last byte with zero bits.
func (bw *BitWriter) Flush() {
	if bw.count > 0 {
		bw.bits <<= (8 - bw.count)
		bw.buf.WriteByte(bw.bits)
		bw.bits = 0
		bw.count = 0
	}
}

func (bw *BitWriter) Bytes() []byte {
	return bw.buf.Bytes()
}

// WriteEOFB writes the end-of-facsimile-block marker, two EOL codes.
func (bw *BitWriter) WriteEOFB() {
	bw.write(eolCode)
	bw.write(eolCode)
}

const (
	white byte = 0
	black byte = 1
)

// EncodeGrayToCCITTG4 encodes an 8-bit greyscale raster of width*height
// bytes, row after row. Values below 128 are black.
func EncodeGrayToCCITTG4(gray []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(gray) != width*height {
		return nil, fmt.Errorf("expected %d bytes for a %dx%d image, got %d", width*height, width, height, len(gray))
	}

	// The line above the first one is all white.
	ref := make([]byte, width)
	cur := make([]byte, width)
	bw := &BitWriter{}
	for y := 0; y < height; y++ {
		row := gray[y*width : (y+1)*width]
		for x, v := range row {
			if v < 128 {
				cur[x] = black
			} else {
				cur[x] = white
			}
		}
		encodeLine(bw, ref, cur)
		ref, cur = cur, ref
	}
	bw.WriteEOFB()
	bw.Flush()
	return bw.Bytes(), nil
}

// Encode is EncodeGrayToCCITTG4 for an image.Gray of any stride.
func Encode(img *image.Gray) ([]byte, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	gray := img.Pix
	if img.Stride != width || b.Min != (image.Point{}) {
		gray = make([]byte, 0, width*height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := img.PixOffset(b.Min.X, y)
			gray = append(gray, img.Pix[off:off+width]...)
		}
	}
	return EncodeGrayToCCITTG4(gray, width, height)
}

// encodeLine codes cur against the reference line ref in two-dimensional
// mode. a0 starts on an imaginary white element left of the line.
func encodeLine(bw *BitWriter, ref, cur []byte) {
	width := len(cur)
	a0, color := -1, white
	for a0 < width {
		a1 := nextChangingElement(cur, a0)
		b1 := nextChangingElement(ref, a0)
		for b1 < width && ref[b1] == color {
			b1 = nextChangingElement(ref, b1)
		}
		b2 := nextChangingElement(ref, b1)

		switch d := a1 - b1; {
		case b2 < a1:
			bw.write(passCode)
			a0 = b2
		case d >= -3 && d <= 3:
			bw.write(verticalCodes[d+3])
			a0 = a1
			color ^= 1
		default:
			a2 := nextChangingElement(cur, a1)
			bw.write(horizontalCode)
			writeRun(bw, a1-max(a0, 0), color)
			writeRun(bw, a2-a1, color^1)
			a0 = a2
		}
	}
}

// nextChangingElement returns the first position after pos whose colour
// differs from the pixel before it, or len(line) if there is none.
func nextChangingElement(line []byte, pos int) int {
	width := len(line)
	if pos >= width {
		return width
	}
	color := white
	if pos >= 0 {
		color = line[pos]
	}
	for i := pos + 1; i < width; i++ {
		if line[i] != color {
			return i
		}
	}
	return width
}

func writeRun(bw *BitWriter, run int, color byte) {
	terminating, makeup := whiteTerminating[:], whiteMakeup[:]
	if color == black {
		terminating, makeup = blackTerminating[:], blackMakeup[:]
	}
	for run >= 2560 {
		bw.write(makeup[len(makeup)-1])
		run -= 2560
	}
	if run >= 64 {
		bw.write(makeup[run/64-1])
		run %= 64
	}
	bw.write(terminating[run])
}

// Bilevel returns img as greyscale when every pixel is pure black or pure
// white, and false otherwise.
func Bilevel(img *image.RGBA) (*image.Gray, bool) {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, y):]
		dst := gray.Pix[gray.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			r, g, bl := src[4*x], src[4*x+1], src[4*x+2]
			if r != g || g != bl || (r != 0 && r != 0xff) {
				return nil, false
			}
			dst[x] = r
		}
	}
	return gray, true
}
