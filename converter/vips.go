//go:build vips
// +build vips

package converter

import (
	"fmt"
	"os"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"
)

var vipsOnce sync.Once

func init() {
	register("vips", func() (Backend, error) {
		vipsOnce.Do(func() {
			vips.LoggingSettings(nil, vips.LogLevelWarning)
			vips.Startup(nil)
		})
		return vipsBackend{}, nil
	})
}

// vipsBackend uses libvips, which also understands animated WebP files the
// pure Go decoder rejects.
type vipsBackend struct{}

func (vipsBackend) Name() string { return "vips" }

func (vipsBackend) Transcode(src, dst string, opts Options) error {
	img, err := vips.NewImageFromFile(src)
	if err != nil {
		return fmt.Errorf("vips load: %w", err)
	}
	defer img.Close()

	if img.HasAlpha() {
		bg := &vips.Color{R: opts.Background.R, G: opts.Background.G, B: opts.Background.B}
		if err := img.Flatten(bg); err != nil {
			return fmt.Errorf("vips flatten: %w", err)
		}
	}

	params := vips.NewJpegExportParams()
	params.Quality = opts.Quality
	buf, _, err := img.ExportJpeg(params)
	if err != nil {
		return fmt.Errorf("vips export: %w", err)
	}

	return writeFileAtomic(dst, func(f *os.File) error {
		_, err := f.Write(buf)
		return err
	})
}
