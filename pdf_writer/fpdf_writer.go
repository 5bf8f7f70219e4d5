package pdf_writer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/phpdave11/gofpdf"
)

// FpdfWriter builds the document in memory with gofpdf. Units are points.
type FpdfWriter struct {
	pdf   *gofpdf.Fpdf
	pages int
}

func NewFpdfWriter(opts Options) *FpdfWriter {
	cfg := &gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
	}
	if opts.InitialWidth > 0 && opts.InitialHeight > 0 {
		cfg.Size = gofpdf.SizeType{Wd: opts.InitialWidth, Ht: opts.InitialHeight}
	} else {
		cfg.SizeStr = "A4"
	}
	pdf := gofpdf.NewCustom(cfg)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreator(Creator, false)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if !opts.Created.IsZero() {
		pdf.SetCreationDate(opts.Created)
		pdf.SetModificationDate(opts.Created)
	}
	return &FpdfWriter{pdf: pdf}
}

func (w *FpdfWriter) AddPage(p Page) error {
	if err := p.validate(); err != nil {
		return err
	}

	var (
		r    io.Reader
		opts = gofpdf.ImageOptions{ReadDpi: false}
	)
	if p.JPEG != nil {
		opts.ImageType = "JPG"
		r = bytes.NewReader(p.JPEG)
	} else {
		var src image.Image = p.Image
		if p.Bilevel != nil {
			src = p.Bilevel
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, src); err != nil {
			return fmt.Errorf("error encoding page image: %w", err)
		}
		opts.ImageType = "PNG"
		r = &buf
	}

	// Register before adding the page so a bad image leaves no blank page.
	w.pdf.RegisterImageOptionsReader(p.Name, opts, r)
	if err := w.pdf.Error(); err != nil {
		w.pdf.ClearError()
		return fmt.Errorf("error registering image: %w", err)
	}

	w.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: p.Width, Ht: p.Height})
	w.pdf.ImageOptions(p.Name, 0, 0, p.Width, p.Height, false, opts, 0, "")
	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("error drawing page: %w", err)
	}
	w.pages++
	return nil
}

func (w *FpdfWriter) PageCount() int {
	return w.pages
}

func (w *FpdfWriter) Save(path string) error {
	if w.pages == 0 {
		return ErrNoPages
	}
	if err := w.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("error saving PDF file: %w", err)
	}
	return nil
}

func (w *FpdfWriter) Abort() {}
