// SPDX-License-Identifier: MIT

package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/isotherm/plate"
)

const (
	cellWidth     = 5
	cellSeparator = "   "
	doneMessage   = "Equilibrium reached."
)

// FrameLabel returns the heading for the snapshot taken after the given sweep.
func FrameLabel(sweep int) string {
	if sweep == 0 {
		return "Initial Temperatures"
	}

	return "Temperature Iteration #" + strconv.Itoa(sweep)
}

// roundLimit bounds the values rounded through v*10; beyond it float64 has no
// fractional digits left to round.
const roundLimit = 1e15

// FormatTemperature renders v with one decimal place and comma-grouped
// thousands, e.g. 1234.56 → "1,234.6", -0.04 → "-0.0".
// Halves round away from zero: 100.25 → "100.3".
func FormatTemperature(v float64) string {
	a := math.Abs(v)
	if a < roundLimit {
		a = math.Round(a*10) / 10
	}
	s := strconv.FormatFloat(a, 'f', 1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		// NaN and Inf have no fractional part to keep.
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	whole, err := strconv.ParseInt(s[:dot], 10, 64)
	if err != nil {
		// beyond int64: print ungrouped
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	out := humanize.Comma(whole) + s[dot:]
	if math.Signbit(v) {
		out = "-" + out
	}

	return out
}

// Text writes the console trace of a solve.
// It is not safe for concurrent use.
type Text struct {
	w io.Writer
}

// NewText returns a Text writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Frame writes a blank line, the frame label and the grid of snap.
// Errors: ErrEmptySnapshot, or the underlying write error.
func (t *Text) Frame(snap plate.Snapshot) error {
	vals := snap.Values()
	if vals == nil {
		return ErrEmptySnapshot
	}
	bw := bufio.NewWriter(t.w)
	fmt.Fprintf(bw, "\n%s:\n", FrameLabel(snap.Sweep))
	for _, row := range vals {
		for _, v := range row {
			fmt.Fprintf(bw, "%*s%s", cellWidth, FormatTemperature(v), cellSeparator)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// Done writes the closing equilibrium line.
func (t *Text) Done() error {
	_, err := fmt.Fprintf(t.w, "\n%s\n", doneMessage)

	return err
}
