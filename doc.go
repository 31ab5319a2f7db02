// Package isotherm computes the steady-state temperature of a rectangular
// metal plate whose edges are held at fixed temperatures.
//
// 🚀 What is isotherm?
//
//	A small relaxation toolkit that brings together:
//		• Solver: in-place Gauss–Seidel averaging of the four neighbours,
//		  swept row by row until no interior cell moves more than the tolerance
//		• Snapshots: immutable copies of the grid after every sweep
//		• Rendering: the classic console trace, PNG heatmaps, HTML reports
//		• History: every run and its sweeps recorded in SQLite
//
// ✨ Why isotherm?
//
//   - Deterministic – the same plate always yields the same sweep sequence
//   - Exact boundaries – edge cells are written once and never touched again
//   - Pure Go – SQLite through modernc.org/sqlite, no cgo
//
// Packages:
//
//	matrix/       - dense row-major grid storage, validation, gonum bridges
//	plate/        - Config, Solver, Snapshot and the Solve driver
//	render/       - text trace, PNG heatmap, HTML report
//	history/      - SQLite run store with embedded migrations
//	config/       - defaults, ISOTHERM_* environment and flags
//	cmd/isotherm/ - the command line tool
//
// Quick ASCII example (the reference 4×4 plate at equilibrium):
//
//	100.0   100.0   100.0   100.0
//	100.0   125.0   150.0   200.0
//	100.0   150.0   175.0   200.0
//	200.0   200.0   200.0   200.0
//
//	go install github.com/katalvlaran/isotherm/cmd/isotherm@latest
package isotherm
