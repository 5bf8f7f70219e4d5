package contracts

import (
	"path/filepath"
	"strings"
)

type ImageKind int

const (
	Unsupported ImageKind = iota
	Standard
	WebP
)

func (k ImageKind) String() string {
	switch k {
	case Standard:
		return "standard"
	case WebP:
		return "webp"
	default:
		return "unsupported"
	}
}

var standardExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tiff": true,
}

const webpExtension = ".webp"

type ImageFile struct {
	Path string
	Kind ImageKind
}

// Classify infers the kind of a file from its extension, ignoring case.
func Classify(name string) ImageKind {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == webpExtension:
		return WebP
	case standardExtensions[ext]:
		return Standard
	default:
		return Unsupported
	}
}

// IsImage reports whether name counts towards a folder's image total.
func IsImage(name string) bool {
	return Classify(name) != Unsupported
}
