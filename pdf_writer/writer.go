package pdf_writer

import (
	"errors"
	"fmt"
	"image"
	"time"

	"img2pdf/contracts"
)

// Creator is recorded in the document information dictionary.
const Creator = "img2pdf"

// ErrNoPages is returned by Save when no page was ever committed. Neither
// engine writes an empty document.
var ErrNoPages = errors.New("document has no pages")

// Page is one image drawn edge to edge on a page of its own size.
// Exactly one of JPEG, Bilevel or Image is set.
type Page struct {
	// Name identifies the image within the document.
	Name string
	// JPEG holds baseline DCT data embedded without re-encoding. Only
	// greyscale and YCbCr JPEGs are passed through.
	JPEG []byte
	Gray bool
	// Bilevel holds a raster whose pixels are all pure black or white.
	// The stream engine stores it CCITT Group 4 compressed.
	Bilevel *image.Gray
	// Image is an opaque raster used for every other source format.
	Image *image.RGBA
	// Width and Height are the page size in points.
	Width  float64
	Height float64
}

func (p Page) validate() error {
	set := 0
	for _, ok := range []bool{p.JPEG != nil, p.Bilevel != nil, p.Image != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("page %q needs exactly one kind of image data", p.Name)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("page %q has invalid size %.2fx%.2f", p.Name, p.Width, p.Height)
	}
	return nil
}

// PageWriter accumulates pages and writes the finished document. A failed
// AddPage leaves the document as it was.
type PageWriter interface {
	AddPage(p Page) error
	PageCount() int
	Save(path string) error
	// Abort discards everything written so far.
	Abort()
}

type Options struct {
	Title string
	// Created is stored as the creation and modification date when non-zero.
	Created time.Time
	// InitialWidth and InitialHeight seed the default page size of the fpdf
	// engine. The stream engine sizes every page on its own.
	InitialWidth  float64
	InitialHeight float64
	// Dir is where the stream engine keeps its working file.
	Dir string
}

func New(engine contracts.Engine, opts Options) (PageWriter, error) {
	switch engine {
	case contracts.EngineFpdf, "":
		return NewFpdfWriter(opts), nil
	case contracts.EngineStream:
		return NewStreamFileWriter(opts)
	default:
		return nil, fmt.Errorf("unknown PDF engine %q", engine)
	}
}
