// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/isotherm/matrix"
	"github.com/katalvlaran/isotherm/plate"
)

// PNG output defaults.
const (
	DefaultPaletteSize = 64
	DefaultPNGWidth    = 6 * vg.Inch
	DefaultPNGHeight   = 5 * vg.Inch
)

// heatGrid adapts a grid to plotter.GridXYZ. Plot rows count upward from the
// bottom, so plot row 0 is grid row rows-1 and the top edge is drawn on top;
// rowTicks labels the axis with grid row numbers.
type heatGrid struct {
	m          mat.Matrix
	rows, cols int
}

var _ plotter.GridXYZ = heatGrid{}

func (g heatGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g heatGrid) Z(c, r int) float64 { return g.m.At(g.rows-1-r, c) }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(r) }

// rowTicks labels plot row y with the grid row it shows.
func rowTicks(rows int) plot.TickerFunc {
	return func(_, _ float64) []plot.Tick {
		ticks := make([]plot.Tick, rows)
		for y := range ticks {
			ticks[y] = plot.Tick{Value: float64(y), Label: strconv.Itoa(rows - 1 - y)}
		}
		return ticks
	}
}

// WritePNG draws snap as a heat map and writes it to w as PNG.
// An empty title defaults to the frame label.
//
// Errors: ErrEmptySnapshot, plot/encoding errors (wrapped).
func WritePNG(w io.Writer, snap plate.Snapshot, title string) error {
	m, err := snap.Matrix()
	if err != nil {
		return fmt.Errorf("render.WritePNG: %w", ErrEmptySnapshot)
	}
	lo, hi, err := matrix.MinMax(snap)
	if err != nil {
		return fmt.Errorf("render.WritePNG: %w", err)
	}
	if hi == lo {
		// a flat plate still needs a non-empty colour range
		hi = lo + 1
	}
	if title == "" {
		title = FrameLabel(snap.Sweep)
	}

	rows, cols := m.Dims()
	hm := plotter.NewHeatMap(heatGrid{m: m, rows: rows, cols: cols}, palette.Heat(DefaultPaletteSize, 1))
	hm.Min, hm.Max = lo, hi

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Y.Tick.Marker = rowTicks(rows)
	p.Add(hm)

	wt, err := p.WriterTo(DefaultPNGWidth, DefaultPNGHeight, "png")
	if err != nil {
		return fmt.Errorf("render.WritePNG: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("render.WritePNG: %w", err)
	}

	return nil
}
