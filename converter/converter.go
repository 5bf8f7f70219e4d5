package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"img2pdf/contracts"
)

const DefaultQuality = 90

var ErrNotWebP = errors.New("not a WebP file")

// WebPConverter writes a JPEG sibling for each WebP it is given. The source
// file is never modified.
type WebPConverter struct {
	backend Backend
	opts    Options
	log     *zap.Logger
}

func NewWebPConverter(backend Backend, opts Options, log *zap.Logger) *WebPConverter {
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WebPConverter{backend: backend, opts: opts, log: log}
}

// JPEGPath swaps the extension of path for .jpg.
func JPEGPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
}

func (c *WebPConverter) Convert(path string) contracts.ConvertResult {
	result := contracts.ConvertResult{Source: path}
	if contracts.Classify(path) != contracts.WebP {
		result.Err = fmt.Errorf("convert %s: %w", path, ErrNotWebP)
		return result
	}

	dst := JPEGPath(path)
	if err := c.backend.Transcode(path, dst, c.opts); err != nil {
		c.log.Error("error converting to JPG",
			zap.String("file", path),
			zap.String("backend", c.backend.Name()),
			zap.Error(err))
		result.Err = fmt.Errorf("convert %s: %w", path, err)
		return result
	}

	c.log.Debug("converted", zap.String("file", path), zap.String("output", dst))
	result.Output = dst
	return result
}
