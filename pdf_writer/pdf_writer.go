package pdf_writer

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf16"

	"img2pdf/ccittg4"
)

// StreamWriter emits image XObjects to dst as pages arrive, so only one
// page is held in memory at a time. Page tree, catalog and xref are written
// by Finish.
type StreamWriter struct {
	objects []int64
	pages   []pageInfo
	bw      *bufio.Writer
	cw      *countingWriter
	objNum  int
	title   string
	// created is written as CreationDate and ModDate when non-zero.
	created time.Time

	pagesObjID   int64
	catalogObjID int64
	infoObjID    int64
}

type pageInfo struct {
	imgID  int64
	width  float64
	height float64
}

type countingWriter struct {
	w      io.Writer
	offset int64
}

func NewStreamWriter(dst io.Writer, title string) (*StreamWriter, error) {
	cw := &countingWriter{
		w: dst,
	}
	pw := &StreamWriter{
		cw:    cw,
		bw:    bufio.NewWriterSize(cw, 1024*1024),
		title: title,
	}

	if _, err := pw.bw.WriteString("%PDF-1.7\n%\xFF\xFF\xFF\xFF\n"); err != nil {
		return nil, fmt.Errorf("error writing PDF header: %w", err)
	}
	return pw, nil
}

func (cw *countingWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	cw.offset += int64(n)
	return n, err
}

func (pw *StreamWriter) getOffset() int64 {
	return pw.cw.offset + int64(pw.bw.Buffered())
}

func (pw *StreamWriter) newObject() int64 {
	id := pw.reserveObject()
	pw.beginObject(id)
	return id
}

// reserveObject allocates an object number whose body is written later
// with beginObject.
func (pw *StreamWriter) reserveObject() int64 {
	pw.objNum++
	pw.objects = append(pw.objects, 0)
	return int64(pw.objNum)
}

func (pw *StreamWriter) beginObject(id int64) {
	pw.objects[id-1] = pw.getOffset()
	fmt.Fprintf(pw.bw, "%d 0 obj\n", id)
}

func (pw *StreamWriter) AddPage(p Page) error {
	if err := p.validate(); err != nil {
		return err
	}

	var (
		imgID int64
		err   error
	)
	switch {
	case p.JPEG != nil && p.Gray:
		imgID, err = pw.writeJPEGImage(p.JPEG, "/DeviceGray")
	case p.JPEG != nil:
		imgID, err = pw.writeJPEGImage(p.JPEG, "/DeviceRGB")
	case p.Bilevel != nil:
		imgID, err = pw.writeCCITTImage(p.Bilevel)
	default:
		imgID, err = pw.writeFlateImage(p)
	}
	if err != nil {
		return err
	}

	pw.pages = append(pw.pages, pageInfo{
		imgID:  imgID,
		width:  p.Width,
		height: p.Height,
	})
	return nil
}

func (pw *StreamWriter) PageCount() int {
	return len(pw.pages)
}

func (pw *StreamWriter) writeJPEGImage(data []byte, colorSpace string) (int64, error) {
	width, height, err := jpegSize(data)
	if err != nil {
		return 0, err
	}
	imgID := pw.newObject()
	pw.bw.WriteString("<<\n/Type /XObject\n/Subtype /Image\n")
	fmt.Fprintf(pw.bw, "/Width %d\n/Height %d\n", width, height)
	fmt.Fprintf(pw.bw, "/ColorSpace %s\n/BitsPerComponent 8\n", colorSpace)
	pw.bw.WriteString("/Filter /DCTDecode\n")

	fmt.Fprintf(pw.bw, "/Length %d\n", len(data))
	pw.bw.WriteString(">>\nstream\n")
	pw.bw.Write(data)
	pw.bw.WriteString("\nendstream\nendobj\n")
	return imgID, nil
}

func jpegSize(data []byte) (int, int, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("error reading JPEG header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func (pw *StreamWriter) writeCCITTImage(img *image.Gray) (int64, error) {
	data, err := ccittg4.Encode(img)
	if err != nil {
		return 0, fmt.Errorf("error encoding CCITT image: %w", err)
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	imgID := pw.newObject()
	pw.bw.WriteString("<<\n/Type /XObject\n/Subtype /Image\n")
	fmt.Fprintf(pw.bw, "/Width %d\n/Height %d\n", width, height)
	pw.bw.WriteString("/ColorSpace /DeviceGray\n/BitsPerComponent 1\n")
	pw.bw.WriteString("/Filter /CCITTFaxDecode\n")
	pw.bw.WriteString("/DecodeParms <<\n")
	fmt.Fprintf(pw.bw, "/K -1\n/Columns %d\n/Rows %d\n/BlackIs1 false\n", width, height)
	pw.bw.WriteString(">>\n")

	fmt.Fprintf(pw.bw, "/Length %d\n", len(data))
	pw.bw.WriteString(">>\nstream\n")
	pw.bw.Write(data)
	pw.bw.WriteString("\nendstream\nendobj\n")
	return imgID, nil
}

// writeFlateImage stores the raster losslessly as zlib-compressed RGB.
func (pw *StreamWriter) writeFlateImage(p Page) (int64, error) {
	img := p.Image
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	var data bytes.Buffer
	zw := zlib.NewWriter(&data)
	row := make([]byte, 3*width)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < width; x++ {
			row[3*x+0] = src[4*x+0]
			row[3*x+1] = src[4*x+1]
			row[3*x+2] = src[4*x+2]
		}
		if _, err := zw.Write(row); err != nil {
			return 0, fmt.Errorf("error compressing image: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("error compressing image: %w", err)
	}

	imgID := pw.newObject()
	pw.bw.WriteString("<<\n/Type /XObject\n/Subtype /Image\n")
	fmt.Fprintf(pw.bw, "/Width %d\n/Height %d\n", width, height)
	pw.bw.WriteString("/ColorSpace /DeviceRGB\n/BitsPerComponent 8\n")
	pw.bw.WriteString("/Filter /FlateDecode\n")
	fmt.Fprintf(pw.bw, "/Length %d\n", data.Len())
	pw.bw.WriteString(">>\nstream\n")
	pw.bw.Write(data.Bytes())
	pw.bw.WriteString("\nendstream\nendobj\n")
	return imgID, nil
}

func (pw *StreamWriter) writeContent(imgName string, width, height float64) int64 {
	content := fmt.Sprintf(
		"q\n%.2f 0 0 %.2f 0 0 cm\n/%s Do\nQ\n",
		width, height, imgName,
	)
	objID := pw.newObject()
	fmt.Fprintf(pw.bw, "<<\n/Length %d\n>>\n", len(content))
	pw.bw.WriteString("stream\n")
	pw.bw.WriteString(content)
	pw.bw.WriteString("endstream\nendobj\n")
	return objID
}

func (pw *StreamWriter) writePage(imgName string, imgObjID, contentID int64, width, height float64) int64 {
	objID := pw.newObject()
	pw.bw.WriteString("<<\n")
	pw.bw.WriteString("/Type /Page\n")
	fmt.Fprintf(pw.bw, "/Parent %d 0 R\n", pw.pagesObjID)
	fmt.Fprintf(pw.bw, "/MediaBox [0 0 %.2f %.2f]\n", width, height)
	fmt.Fprintf(pw.bw, "/Resources << /XObject << /%s %d 0 R >> >>\n", imgName, imgObjID)
	fmt.Fprintf(pw.bw, "/Contents %d 0 R\n", contentID)
	pw.bw.WriteString(">>\nendobj\n")
	return objID
}

func (pw *StreamWriter) createDocumentStructure() error {
	pw.pagesObjID = pw.reserveObject()

	pageIDs := make([]int64, 0, len(pw.pages))
	for i, info := range pw.pages {
		imgName := fmt.Sprintf("Im%d", i)
		contentID := pw.writeContent(imgName, info.width, info.height)
		pageIDs = append(pageIDs, pw.writePage(imgName, info.imgID, contentID, info.width, info.height))
	}

	pw.beginObject(pw.pagesObjID)
	pw.bw.WriteString("<<\n/Type /Pages\n")
	fmt.Fprintf(pw.bw, "/Count %d\n", len(pageIDs))
	pw.bw.WriteString("/Kids [")
	for _, id := range pageIDs {
		fmt.Fprintf(pw.bw, " %d 0 R", id)
	}
	pw.bw.WriteString(" ]\n>>\nendobj\n")

	pw.infoObjID = pw.newObject()
	pw.bw.WriteString("<<\n")
	if pw.title != "" {
		fmt.Fprintf(pw.bw, "/Title %s\n", pdfString(pw.title))
	}
	fmt.Fprintf(pw.bw, "/Creator %s\n/Producer %s\n", pdfString(Creator), pdfString(Creator))
	if !pw.created.IsZero() {
		date := pdfDate(pw.created)
		fmt.Fprintf(pw.bw, "/CreationDate %s\n/ModDate %s\n", date, date)
	}
	pw.bw.WriteString(">>\nendobj\n")

	pw.catalogObjID = pw.newObject()
	fmt.Fprintf(pw.bw, "<<\n/Type /Catalog\n/Pages %d 0 R\n>>\nendobj\n", pw.pagesObjID)

	if err := pw.bw.Flush(); err != nil {
		return fmt.Errorf("error flushing buffer after creating structure: %w", err)
	}
	return nil
}

// Finish writes the page tree, xref table and trailer. The writer must not
// be used afterwards.
func (pw *StreamWriter) Finish() error {
	if err := pw.createDocumentStructure(); err != nil {
		return fmt.Errorf("failed to create document structure before finishing: %w", err)
	}

	startXref := pw.cw.offset
	total := len(pw.objects) + 1

	fmt.Fprintf(pw.bw, "xref\n0 %d\n", total)
	fmt.Fprintf(pw.bw, "%010d %05d f\r\n", 0, 65535)
	for _, off := range pw.objects {
		fmt.Fprintf(pw.bw, "%010d %05d n\r\n", off, 0)
	}
	fmt.Fprintf(pw.bw,
		"trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		total, pw.catalogObjID, pw.infoObjID, startXref,
	)
	if err := pw.bw.Flush(); err != nil {
		return fmt.Errorf("error writing xref and trailer: %w", err)
	}
	return nil
}

// pdfDate formats t as a PDF date string in UTC.
func pdfDate(t time.Time) string {
	return pdfString("D:" + t.UTC().Format("20060102150405") + "+00'00'")
}

// pdfString encodes s as a PDF text string: a literal for ASCII, UTF-16BE
// hex otherwise.
func pdfString(s string) string {
	ascii := true
	for _, r := range s {
		if r > 0x7e || r < 0x20 {
			ascii = false
			break
		}
	}
	if ascii {
		r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
		return "(" + r.Replace(s) + ")"
	}
	var b strings.Builder
	b.WriteString("<FEFF")
	for _, u := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04X", u)
	}
	b.WriteString(">")
	return b.String()
}

// StreamFileWriter runs a StreamWriter against a hidden working file that
// is renamed into place on Save.
type StreamFileWriter struct {
	*StreamWriter
	file *os.File
}

func NewStreamFileWriter(opts Options) (*StreamFileWriter, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, ".img2pdf-*.pdf.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create working file: %w", err)
	}
	sw, err := NewStreamWriter(f, opts.Title)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	sw.created = opts.Created
	return &StreamFileWriter{StreamWriter: sw, file: f}, nil
}

func (w *StreamFileWriter) Save(path string) error {
	if w.PageCount() == 0 {
		w.Abort()
		return ErrNoPages
	}
	if err := w.Finish(); err != nil {
		w.Abort()
		return err
	}
	tmpPath := w.file.Name()
	if err := w.file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error closing PDF file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Clean(path)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error saving PDF file: %w", err)
	}
	return nil
}

func (w *StreamFileWriter) Abort() {
	w.file.Close()
	os.Remove(w.file.Name())
}
