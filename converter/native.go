package converter

import (
	"fmt"
	"image/jpeg"
	"os"

	"golang.org/x/image/webp"
)

func init() {
	register(DefaultBackend, func() (Backend, error) { return nativeBackend{}, nil })
}

// nativeBackend decodes with golang.org/x/image/webp and encodes with
// image/jpeg. It needs no C libraries.
type nativeBackend struct{}

func (nativeBackend) Name() string { return DefaultBackend }

func (nativeBackend) Transcode(src, dst string, opts Options) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening WebP file: %w", err)
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		return fmt.Errorf("error decoding WebP file: %w", err)
	}
	img = Normalize(img, opts.Background)

	return writeFileAtomic(dst, func(out *os.File) error {
		if err := jpeg.Encode(out, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
			return fmt.Errorf("error encoding JPEG: %w", err)
		}
		return nil
	})
}
