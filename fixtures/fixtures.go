// Package fixtures writes small image files for tests.
package fixtures

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Solid returns a w×h image filled with c.
func Solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func create(t testing.TB, path string) *os.File {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	return f
}

func WritePNG(t testing.TB, path string, w, h int, c color.NRGBA) string {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	require.NoError(t, png.Encode(f, Solid(w, h, c)))
	return path
}

func WriteJPEG(t testing.TB, path string, w, h int, c color.NRGBA) string {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, Solid(w, h, c), &jpeg.Options{Quality: 90}))
	return path
}

func WriteGrayJPEG(t testing.TB, path string, w, h int, y uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = y
	}
	f := create(t, path)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
	return path
}

func WriteGIF(t testing.TB, path string, w, h int, c color.NRGBA) string {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	require.NoError(t, gif.Encode(f, Solid(w, h, c), nil))
	return path
}

func WriteBMP(t testing.TB, path string, w, h int, c color.NRGBA) string {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	require.NoError(t, bmp.Encode(f, Solid(w, h, c)))
	return path
}

func WriteTIFF(t testing.TB, path string, w, h int, c color.NRGBA) string {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	require.NoError(t, tiff.Encode(f, Solid(w, h, c), nil))
	return path
}

// WriteWebP writes a lossless WebP holding a single colour.
func WriteWebP(t testing.TB, path string, w, h int, c color.NRGBA) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, SolidWebP(w, h, c), 0o644))
	return path
}

// WriteGarbage writes bytes that no image decoder accepts.
func WriteGarbage(t testing.TB, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("definitely not an image"), 0o644))
	return path
}

// SolidWebP encodes a VP8L bitstream in which every Huffman code holds a
// single symbol, so each pixel costs zero bits.
func SolidWebP(w, h int, c color.NRGBA) []byte {
	var bw bitWriter
	bw.write(0x2f, 8)
	bw.write(uint32(w-1), 14)
	bw.write(uint32(h-1), 14)
	if c.A != 0xff {
		bw.write(1, 1)
	} else {
		bw.write(0, 1)
	}
	bw.write(0, 3) // version
	bw.write(0, 1) // no transforms
	bw.write(0, 1) // no colour cache
	bw.write(0, 1) // no meta prefix codes
	// green, red, blue, alpha, distance
	for _, sym := range []uint8{c.G, c.R, c.B, c.A, 0} {
		bw.write(1, 1) // simple code
		bw.write(0, 1) // one symbol
		bw.write(1, 1) // eight bit symbol
		bw.write(uint32(sym), 8)
	}
	payload := bw.bytes()

	chunk := make([]byte, 0, 20+len(payload)+1)
	chunk = append(chunk, "RIFF"...)
	chunk = binary.LittleEndian.AppendUint32(chunk, 0)
	chunk = append(chunk, "WEBPVP8L"...)
	chunk = binary.LittleEndian.AppendUint32(chunk, uint32(len(payload)))
	chunk = append(chunk, payload...)
	if len(payload)%2 == 1 {
		chunk = append(chunk, 0)
	}
	binary.LittleEndian.PutUint32(chunk[4:8], uint32(len(chunk)-8))
	return chunk
}

type bitWriter struct {
	buf  []byte
	acc  uint64
	nacc uint
}

func (b *bitWriter) write(v uint32, n uint) {
	b.acc |= uint64(v) << b.nacc
	b.nacc += n
	for b.nacc >= 8 {
		b.buf = append(b.buf, byte(b.acc))
		b.acc >>= 8
		b.nacc -= 8
	}
}

func (b *bitWriter) bytes() []byte {
	if b.nacc > 0 {
		b.buf = append(b.buf, byte(b.acc))
		b.acc, b.nacc = 0, 0
	}
	return b.buf
}
