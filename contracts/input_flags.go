package contracts

import "image/color"

// Engine names the PDF backend used to assemble pages.
type Engine string

const (
	EngineFpdf   Engine = "fpdf"
	EngineStream Engine = "stream"
)

// PageSizeMode controls how image pixels map to PDF points.
type PageSizeMode string

const (
	// PageSizePixels maps one pixel to one point.
	PageSizePixels PageSizeMode = "pixels"
	// PageSizeDPI scales pages by the resolution recorded in the image.
	PageSizeDPI PageSizeMode = "dpi"
)

type InputFlags struct {
	InputRootDir string
	ReportPath   string
	LogLevel     string
	Decoder      string
	Engine       Engine
	PageSize     PageSizeMode
	Background   color.RGBA
	MinImages    int
	JpegQuality  int
}
