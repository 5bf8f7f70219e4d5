package converter

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrBackendUnavailable is returned for decoder backends that are unknown or
// were not compiled into this binary.
var ErrBackendUnavailable = errors.New("decoder backend unavailable")

const DefaultBackend = "native"

type Options struct {
	Quality    int
	Background color.RGBA
}

// Backend re-encodes one source image as a JPEG at dst.
type Backend interface {
	Name() string
	Transcode(src, dst string, opts Options) error
}

var backends = map[string]func() (Backend, error){}

func register(name string, open func() (Backend, error)) {
	backends[name] = open
}

func NewBackend(name string) (Backend, error) {
	if name == "" {
		name = DefaultBackend
	}
	open, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrBackendUnavailable, name, strings.Join(Backends(), ", "))
	}
	return open()
}

// Backends lists the backends compiled into this binary.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeFileAtomic writes data next to dst and renames it into place, so a
// failed write never leaves a truncated JPEG behind.
func writeFileAtomic(dst string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	info, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to get file info: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(tmpPath)
		return fmt.Errorf("file is empty: %s", tmpPath)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
