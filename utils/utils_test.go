package utils

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img2pdf/fixtures"
)

// withPHYs inserts a pHYs chunk right after IHDR.
func withPHYs(t *testing.T, pngData []byte, pxPerMetre uint32, unit byte) []byte {
	t.Helper()
	const ihdrEnd = 8 + 4 + 4 + 13 + 4

	body := make([]byte, 9)
	binary.BigEndian.PutUint32(body[0:4], pxPerMetre)
	binary.BigEndian.PutUint32(body[4:8], pxPerMetre)
	body[8] = unit

	var chunk bytes.Buffer
	require.NoError(t, binary.Write(&chunk, binary.BigEndian, uint32(len(body))))
	chunk.WriteString("pHYs")
	chunk.Write(body)
	require.NoError(t, binary.Write(&chunk, binary.BigEndian, crc32.ChecksumIEEE(append([]byte("pHYs"), body...))))

	out := append([]byte{}, pngData[:ihdrEnd]...)
	out = append(out, chunk.Bytes()...)
	return append(out, pngData[ihdrEnd:]...)
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, fixtures.Solid(4, 4, color.NRGBA{R: 9, A: 255})))
	return buf.Bytes()
}

func TestGetDPIfromPNG(t *testing.T) {
	plain := encodePNG(t)

	t.Run("metre unit", func(t *testing.T) {
		// 11811 px/m is 300 dpi
		dpi, err := GetDPIfromPNG(withPHYs(t, plain, 11811, 1))
		require.NoError(t, err)
		assert.InDelta(t, 300, dpi, 0.1)
	})

	t.Run("unknown unit", func(t *testing.T) {
		dpi, err := GetDPIfromPNG(withPHYs(t, plain, 11811, 0))
		assert.ErrorIs(t, err, ErrNoResolution)
		assert.Equal(t, DefaultDPI, dpi)
	})

	t.Run("no chunk", func(t *testing.T) {
		dpi, err := GetDPIfromPNG(plain)
		assert.ErrorIs(t, err, ErrNoResolution)
		assert.Equal(t, DefaultDPI, dpi)
	})

	t.Run("still decodes", func(t *testing.T) {
		_, err := png.Decode(bytes.NewReader(withPHYs(t, plain, 3780, 1)))
		assert.NoError(t, err)
	})
}

func TestReadDPI(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "scan.png")
	require.NoError(t, os.WriteFile(pngPath, withPHYs(t, encodePNG(t), 23622, 1), 0o644))
	x, y, err := ReadDPI(pngPath)
	require.NoError(t, err)
	assert.InDelta(t, 600, x, 0.1)
	assert.InDelta(t, 600, y, 0.1)

	jpgPath := fixtures.WriteJPEG(t, filepath.Join(dir, "photo.jpg"), 4, 4, color.NRGBA{A: 255})
	x, y, err = ReadDPI(jpgPath)
	assert.ErrorIs(t, err, ErrNoResolution)
	assert.Equal(t, DefaultDPI, x)
	assert.Equal(t, DefaultDPI, y)

	tiffPath := fixtures.WriteTIFF(t, filepath.Join(dir, "page.tiff"), 4, 4, color.NRGBA{A: 255})
	x, _, _ = ReadDPI(tiffPath)
	assert.InDelta(t, 72, x, 0.1)

	_, _, err = ReadDPI(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestTIFFPageCount(t *testing.T) {
	dir := t.TempDir()

	n, err := TIFFPageCount(fixtures.WriteTIFF(t, filepath.Join(dir, "one.tiff"), 3, 3, color.NRGBA{A: 255}))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = TIFFPageCount(filepath.Join(dir, "p1.png"))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "non-TIFF files are a single page")

	_, err = TIFFPageCount(fixtures.WriteGarbage(t, filepath.Join(dir, "bad.tiff")))
	assert.Error(t, err)
}

func TestPointSize(t *testing.T) {
	assert.Equal(t, 72.0, PointSize(300, 300))
	assert.Equal(t, 100.0, PointSize(100, 72))
	assert.Equal(t, 100.0, PointSize(100, 0))
}
