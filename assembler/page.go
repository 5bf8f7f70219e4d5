package assembler

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"img2pdf/ccittg4"
	"img2pdf/contracts"
	"img2pdf/converter"
	"img2pdf/pdf_writer"
	"img2pdf/utils"
)

// pageSize reads only the header of the image at path and returns the size
// its page will have.
func (a *Assembler) pageSize(path string) (float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("error reading image header: %w", err)
	}
	w, h := a.points(path, cfg.Width, cfg.Height)
	return w, h, nil
}

// points converts a pixel size to page points for the configured mode.
func (a *Assembler) points(path string, width, height int) (float64, float64) {
	if a.opts.PageSize != contracts.PageSizeDPI {
		return float64(width), float64(height)
	}
	dpiX, dpiY, err := utils.ReadDPI(path)
	if err != nil {
		a.log.Debug("using default resolution", zap.String("file", path), zap.Error(err))
	}
	return utils.PointSize(width, dpiX), utils.PointSize(height, dpiY)
}

func (a *Assembler) addPage(doc pdf_writer.PageWriter, path string) contracts.PageResult {
	result := contracts.PageResult{Source: path}

	page, cfg, err := a.preparePage(path)
	if err == nil {
		err = doc.AddPage(page)
	}
	if err != nil {
		result.Err = err
		return result
	}

	result.Width, result.Height = cfg.Width, cfg.Height
	a.log.Debug("page added", zap.String("file", path), zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	return result
}

// preparePage decodes the image at path into a page. Greyscale and YCbCr
// JPEGs keep their original bytes; everything else is flattened onto the
// background colour. Pure black and white rasters become bilevel pages.
func (a *Assembler) preparePage(path string) (pdf_writer.Page, image.Config, error) {
	page := pdf_writer.Page{Name: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return page, image.Config{}, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return page, cfg, fmt.Errorf("error decoding image: %w", err)
	}

	passthrough := format == "jpeg" &&
		(cfg.ColorModel == color.GrayModel || cfg.ColorModel == color.YCbCrModel)
	if passthrough {
		// Full decode so truncated scan data is caught before it is embedded.
		if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
			return page, cfg, fmt.Errorf("error decoding image: %w", err)
		}
		page.JPEG = data
		page.Gray = cfg.ColorModel == color.GrayModel
	} else {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return page, cfg, fmt.Errorf("error decoding image: %w", err)
		}
		flat := converter.Flatten(img, a.opts.Background)
		if gray, ok := ccittg4.Bilevel(flat); ok {
			page.Bilevel = gray
		} else {
			page.Image = flat
		}
	}

	if format == "tiff" {
		if n, err := utils.TIFFPageCount(path); err == nil && n > 1 {
			a.log.Warn("multi-page TIFF, only the first page is drawn",
				zap.String("file", path), zap.Int("pages", n))
		}
	}

	page.Width, page.Height = a.points(path, cfg.Width, cfg.Height)
	return page, cfg, nil
}
