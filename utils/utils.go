package utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/google/tiff"
)

// DefaultDPI is assumed when an image records no usable resolution.
const DefaultDPI = 72.0

var ErrNoResolution = errors.New("no resolution recorded")

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ReadDPI returns the horizontal and vertical resolution stored in the image
// at filePath. When none is found it returns DefaultDPI for both axes along
// with an error wrapping ErrNoResolution.
func ReadDPI(filePath string) (float64, float64, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return DefaultDPI, DefaultDPI, err
	}
	if bytes.HasPrefix(data, pngSignature) {
		dpi, err := GetDPIfromPNG(data)
		return dpi, dpi, err
	}
	return GetEXIFDPI(data)
}

// GetEXIFDPI reads XResolution/YResolution from the EXIF block of a JPEG or
// TIFF held in data.
func GetEXIFDPI(data []byte) (float64, float64, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return DefaultDPI, DefaultDPI, fmt.Errorf("%w: EXIF not found: %v", ErrNoResolution, err)
	}

	im := exifcommon.NewIfdMapping()
	ti := exif.NewTagIndex()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return DefaultDPI, DefaultDPI, err
	}

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return DefaultDPI, DefaultDPI, fmt.Errorf("%w: %v", ErrNoResolution, err)
	}

	dpiX, okX := rationalTag(index.RootIfd, "XResolution")
	dpiY, okY := rationalTag(index.RootIfd, "YResolution")
	if !okX && !okY {
		return DefaultDPI, DefaultDPI, ErrNoResolution
	}
	if !okX {
		dpiX = dpiY
	}
	if !okY {
		dpiY = dpiX
	}

	if tag, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			// 3 = centimetres
			if u, ok := val.([]uint16); ok && len(u) > 0 && u[0] == 3 {
				dpiX *= 2.54
				dpiY *= 2.54
			}
		}
	}

	return dpiX, dpiY, nil
}

func rationalTag(ifd *exif.Ifd, name string) (float64, bool) {
	tag, err := ifd.FindTagWithName(name)
	if err != nil || len(tag) == 0 {
		return 0, false
	}
	val, err := tag[0].Value()
	if err != nil {
		return 0, false
	}
	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 || rats[0].Numerator == 0 {
		return 0, false
	}
	return float64(rats[0].Numerator) / float64(rats[0].Denominator), true
}

// GetDPIfromPNG walks the chunks of a PNG looking for pHYs.
func GetDPIfromPNG(data []byte) (float64, error) {
	const physChunk = "pHYs"
	buf := bytes.NewReader(data)

	if _, err := buf.Seek(int64(len(pngSignature)), io.SeekStart); err != nil {
		return DefaultDPI, err
	}

	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			break
		}

		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(buf, chunkType); err != nil {
			break
		}

		if string(chunkType) == physChunk {
			var pxPerUnitX, pxPerUnitY uint32
			var unit byte

			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitX); err != nil {
				return DefaultDPI, err
			}
			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitY); err != nil {
				return DefaultDPI, err
			}
			if err := binary.Read(buf, binary.BigEndian, &unit); err != nil {
				return DefaultDPI, err
			}

			// unit 1 = metre, 0 = aspect ratio only
			if unit == 1 && pxPerUnitX > 0 {
				return float64(pxPerUnitX) * 0.0254, nil
			}
			break
		}
		if string(chunkType) == "IDAT" {
			// pHYs must precede the image data
			break
		}

		// skip chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			break
		}
	}

	return DefaultDPI, ErrNoResolution
}

// TIFFPageCount returns the number of image directories in a TIFF. Only the
// first one is ever drawn.
func TIFFPageCount(filePath string) (int, error) {
	if ext := strings.ToLower(filepath.Ext(filePath)); ext != ".tiff" && ext != ".tif" {
		return 1, nil
	}
	f, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	t, err := tiff.Parse(f, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("error parsing TIFF: %w", err)
	}
	return len(t.IFDs()), nil
}

// PointSize converts a pixel size to PDF points at the given resolution.
func PointSize(px int, dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return float64(px) * 72.0 / dpi
}
