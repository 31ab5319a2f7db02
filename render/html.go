// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/katalvlaran/isotherm/matrix"
	"github.com/katalvlaran/isotherm/plate"
)

// viridis is the colour ramp used for the visual map.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// HTMLReport accumulates snapshots and renders them as one HTML page.
// The colour scale is shared across frames so they can be compared.
// It is not safe for concurrent use.
type HTMLReport struct {
	title  string
	frames []plate.Snapshot
	lo, hi float64
}

// NewHTMLReport returns an empty report with the given page title.
func NewHTMLReport(title string) *HTMLReport {
	return &HTMLReport{title: title, lo: math.Inf(1), hi: math.Inf(-1)}
}

// Add appends a frame. Snapshots are immutable, so no copy is taken.
// Errors: ErrEmptySnapshot.
func (h *HTMLReport) Add(snap plate.Snapshot) error {
	lo, hi, err := matrix.MinMax(snap)
	if err != nil || snap.Rows() == 0 {
		return ErrEmptySnapshot
	}
	h.lo = math.Min(h.lo, lo)
	h.hi = math.Max(h.hi, hi)
	h.frames = append(h.frames, snap)

	return nil
}

// Len returns the number of frames added so far.
func (h *HTMLReport) Len() int { return len(h.frames) }

// Render writes the page with one heat map per frame, in the order added.
// Errors: ErrNoFrames, or the template/write error (wrapped).
func (h *HTMLReport) Render(w io.Writer) error {
	if len(h.frames) == 0 {
		return ErrNoFrames
	}
	lo, hi := h.lo, h.hi
	if hi == lo {
		hi = lo + 1
	}

	page := components.NewPage()
	for _, snap := range h.frames {
		page.AddCharts(h.heatMap(snap, lo, hi))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render.HTMLReport: %w", err)
	}

	return nil
}

// heatMap builds the chart for one frame. Category index 0 on the y axis
// is drawn at the bottom, so grid row r maps to index rows-1-r.
func (h *HTMLReport) heatMap(snap plate.Snapshot, lo, hi float64) *charts.HeatMap {
	vals := snap.Values()
	rows, cols := len(vals), len(vals[0])

	xs := make([]string, cols)
	for c := range xs {
		xs[c] = strconv.Itoa(c)
	}
	ys := make([]string, rows)
	for r := range ys {
		ys[rows-1-r] = strconv.Itoa(r)
	}
	data := make([]opts.HeatMapData, 0, rows*cols)
	for r, row := range vals {
		for c, v := range row {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, rows - 1 - r, math.Round(v*10) / 10}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: h.title, Width: "640px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    FrameLabel(snap.Sweep),
			Subtitle: fmt.Sprintf("%s max change %s", h.title, FormatTemperature(snap.MaxDelta)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xs, Name: "column"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys, Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.AddSeries("temperature", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	return hm
}
