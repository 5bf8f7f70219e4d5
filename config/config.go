// Package config resolves run options from flags, environment and an
// optional YAML file.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"img2pdf/contracts"
)

const EnvPrefix = "IMG2PDF"

const (
	KeyMinImages  = "min_images"
	KeyEngine     = "engine"
	KeyDecoder    = "decoder"
	KeyQuality    = "quality"
	KeyPageSize   = "page_size"
	KeyBackground = "background"
	KeyReport     = "report"
	KeyLogLevel   = "log_level"
)

const (
	DefaultMinImages  = 1
	DefaultQuality    = 90
	DefaultBackground = "#ffffff"
	DefaultLogLevel   = "info"
	DefaultDecoder    = "native"
)

var ErrInvalid = errors.New("invalid configuration")

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMinImages, DefaultMinImages)
	v.SetDefault(KeyEngine, string(contracts.EngineFpdf))
	v.SetDefault(KeyDecoder, DefaultDecoder)
	v.SetDefault(KeyQuality, DefaultQuality)
	v.SetDefault(KeyPageSize, string(contracts.PageSizePixels))
	v.SetDefault(KeyBackground, DefaultBackground)
	v.SetDefault(KeyReport, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// Load reads the run options for root out of v and validates them.
func Load(v *viper.Viper, root string) (contracts.InputFlags, error) {
	flags := contracts.InputFlags{
		InputRootDir: root,
		ReportPath:   v.GetString(KeyReport),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
		Decoder:      strings.ToLower(v.GetString(KeyDecoder)),
		Engine:       contracts.Engine(strings.ToLower(v.GetString(KeyEngine))),
		PageSize:     contracts.PageSizeMode(strings.ToLower(v.GetString(KeyPageSize))),
		MinImages:    v.GetInt(KeyMinImages),
		JpegQuality:  v.GetInt(KeyQuality),
	}

	bg, err := ParseColor(v.GetString(KeyBackground))
	if err != nil {
		return flags, fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	flags.Background = bg

	if err := Validate(flags); err != nil {
		return flags, err
	}
	return flags, nil
}

func Validate(f contracts.InputFlags) error {
	if f.MinImages < 0 {
		return fmt.Errorf("%w: min-images must be >= 0, got %d", ErrInvalid, f.MinImages)
	}
	if f.JpegQuality < 1 || f.JpegQuality > 100 {
		return fmt.Errorf("%w: quality must be between 1 and 100, got %d", ErrInvalid, f.JpegQuality)
	}
	switch f.Engine {
	case contracts.EngineFpdf, contracts.EngineStream:
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalid, f.Engine)
	}
	switch f.PageSize {
	case contracts.PageSizePixels, contracts.PageSizeDPI:
	default:
		return fmt.Errorf("%w: unknown page size mode %q", ErrInvalid, f.PageSize)
	}
	if _, err := zapcore.ParseLevel(f.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ParseColor accepts #rgb or #rrggbb, with or without the leading #.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q is not #rgb or #rrggbb", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}
