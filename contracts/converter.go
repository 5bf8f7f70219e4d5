package contracts

// Converter turns a single WebP file into a JPEG sibling.
type Converter interface {
	Convert(path string) ConvertResult
}

// ConvertResult is the outcome of one WebP to JPEG conversion. Output is
// empty whenever Err is set.
type ConvertResult struct {
	Source string
	Output string
	Err    error
}

func (r ConvertResult) OK() bool {
	return r.Err == nil
}

// PageResult is the outcome of drawing one image as a PDF page.
type PageResult struct {
	Source string
	Width  int
	Height int
	Err    error
}

func (r PageResult) OK() bool {
	return r.Err == nil
}
