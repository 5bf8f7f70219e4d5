//go:build imagick
// +build imagick

package converter

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/gographics/imagick.v2/imagick"
)

var imagickOnce sync.Once

func init() {
	register("imagick", func() (Backend, error) {
		imagickOnce.Do(imagick.Initialize)
		return imagickBackend{}, nil
	})
}

type imagickBackend struct{}

func (imagickBackend) Name() string { return "imagick" }

func (imagickBackend) Transcode(src, dst string, opts Options) error {
	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	if err := mw.ReadImage(src); err != nil {
		return fmt.Errorf("imagick read: %w", err)
	}

	bg := imagick.NewPixelWand()
	defer bg.Destroy()
	bg.SetColor(fmt.Sprintf("rgb(%d,%d,%d)", opts.Background.R, opts.Background.G, opts.Background.B))

	if err := mw.SetImageBackgroundColor(bg); err != nil {
		return fmt.Errorf("imagick background: %w", err)
	}
	if err := mw.SetImageAlphaChannel(imagick.ALPHA_CHANNEL_REMOVE); err != nil {
		return fmt.Errorf("imagick flatten: %w", err)
	}
	if err := mw.SetImageFormat("JPEG"); err != nil {
		return fmt.Errorf("imagick format: %w", err)
	}
	if err := mw.SetImageCompressionQuality(uint(opts.Quality)); err != nil {
		return fmt.Errorf("imagick quality: %w", err)
	}

	blob := mw.GetImageBlob()
	return writeFileAtomic(dst, func(f *os.File) error {
		_, err := f.Write(blob)
		return err
	})
}
