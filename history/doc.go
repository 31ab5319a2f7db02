// SPDX-License-Identifier: MIT

// Package history keeps a SQLite record of completed plate solves.
//
// What:
//
//   - runs: one row per solve with the full plate.Config, the number of
//     sweeps and whether equilibrium was reached.
//   - frames: one row per observed snapshot (sweep 0 is the initial grid),
//     with the grid stored as JSON rows.
//
// The schema is applied on Open from migrations embedded in the binary
// (golang-migrate, iofs source, sqlite driver). The database driver is the
// pure-Go modernc.org/sqlite, so no cgo is required.
//
// Errors:
//
//   - ErrRunNotFound: no run with the requested id.
//   - ErrNoFrames: SaveRun called without snapshots.
package history
