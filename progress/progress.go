// Package progress draws a single-line console progress bar.
package progress

import (
	"fmt"
	"io"
	"strings"
)

const (
	barWidth   = 50
	filledCell = "█"
	emptyCell  = "-"
)

// Reporter redraws a progress bar in place on w. A Reporter is not shared
// between goroutines; each pipeline owns its own.
type Reporter struct {
	w     io.Writer
	dirty bool
}

func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w}
}

// Render draws current out of total. total must be positive; a zero total
// panics with an integer divide by zero.
func (r *Reporter) Render(current, total int) {
	filled := barWidth * current / total
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	percent := 100 * float64(current) / float64(total)
	bar := strings.Repeat(filledCell, filled) + strings.Repeat(emptyCell, barWidth-filled)
	fmt.Fprintf(r.w, "\r|%s| %.2f%%", bar, percent)
	r.dirty = true
}

// Finish ends the current bar line. It is a no-op when nothing was drawn
// since the last call.
func (r *Reporter) Finish() {
	if !r.dirty {
		return
	}
	fmt.Fprintln(r.w)
	r.dirty = false
}
