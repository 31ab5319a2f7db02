// SPDX-License-Identifier: MIT

// Package render turns plate snapshots into something a person can read.
//
// What:
//
//   - Text writes the console trace: a labelled block per snapshot, one row
//     per line, each value with one decimal place, thousands grouped, right
//     aligned in five characters and followed by three spaces.
//   - WritePNG draws a single snapshot as a gonum/plot heat map.
//   - HTMLReport collects snapshots and renders them as one go-echarts page
//     with a heat map per frame.
//
// Text.Frame and HTMLReport.Add have the plate.Observer signature, so both
// can be passed to plate.WithObserver directly.
//
// Labels:
//
//	sweep 0  → "Initial Temperatures"
//	sweep n  → "Temperature Iteration #n"
//
// Errors:
//
//   - ErrEmptySnapshot: a zero-value snapshot (no grid) was given.
//   - ErrNoFrames: HTMLReport.Render called before any frame was added.
package render
