// SPDX-License-Identifier: MIT

// Command isotherm relaxes a rectangular plate with fixed edge temperatures
// to equilibrium and prints every sweep.
//
// Settings come from flags, ISOTHERM_* environment variables or a .env file
// in the working directory; run with -h for the list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/isotherm/config"
	"github.com/katalvlaran/isotherm/history"
	"github.com/katalvlaran/isotherm/matrix"
	"github.com/katalvlaran/isotherm/plate"
	"github.com/katalvlaran/isotherm/render"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("could not read .env file, using process environment")
	}

	os.Exit(run(context.Background(), os.Args[1:], os.Getenv, os.Stdout, log))
}

// run executes one solve and returns the process exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout io.Writer, log *logrus.Logger) int {
	cfg, err := config.LoadWithUsage(args, getenv, log.Out)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return 2
	}
	log.SetLevel(cfg.LogLevel)

	solver, err := plate.NewSolver(cfg.Plate)
	if err != nil {
		log.WithError(err).Error("cannot build plate")
		return 2
	}
	log.WithFields(logrus.Fields{
		"rows":      cfg.Plate.Rows,
		"cols":      cfg.Plate.Cols,
		"tolerance": cfg.Plate.Tolerance,
	}).Debug("plate initialized")

	var (
		text   = render.NewText(stdout)
		report = render.NewHTMLReport(fmt.Sprintf("Plate %dx%d", cfg.Plate.Rows, cfg.Plate.Cols))
		frames []plate.Snapshot
		opts   []plate.Option
	)
	if !cfg.Quiet {
		opts = append(opts, plate.WithObserver(text.Frame))
	}
	if cfg.HTMLPath != "" {
		opts = append(opts, plate.WithObserver(report.Add))
	}
	if cfg.DBPath != "" {
		opts = append(opts, plate.WithObserver(func(s plate.Snapshot) error {
			frames = append(frames, s)
			return nil
		}))
	}
	opts = append(opts, plate.WithObserver(func(s plate.Snapshot) error {
		log.WithFields(logrus.Fields{"sweep": s.Sweep, "max_delta": s.MaxDelta}).Debug("sweep")
		return nil
	}))
	if cfg.MaxSweeps > 0 {
		opts = append(opts, plate.WithMaxSweeps(cfg.MaxSweeps))
	}

	res, solveErr := plate.Solve(solver, opts...)
	code := 0
	switch {
	case solveErr == nil:
		if !cfg.Quiet {
			if err := text.Done(); err != nil {
				log.WithError(err).Error("write trace")
				return 1
			}
		}
	case errors.Is(solveErr, plate.ErrSweepLimit):
		log.WithError(solveErr).Warn("equilibrium not reached")
		code = 1
	default:
		log.WithError(solveErr).Error("solve failed")
		return 1
	}

	if cfg.PNGPath != "" {
		title := render.FrameLabel(res.Final.Sweep)
		if err := writeFile(cfg.PNGPath, func(w io.Writer) error { return render.WritePNG(w, res.Final, title) }); err != nil {
			log.WithError(err).Error("write png")
			return 1
		}
		log.WithField("path", cfg.PNGPath).Info("heatmap written")
	}
	if cfg.HTMLPath != "" {
		if err := writeFile(cfg.HTMLPath, report.Render); err != nil {
			log.WithError(err).Error("write html")
			return 1
		}
		log.WithFields(logrus.Fields{"path": cfg.HTMLPath, "frames": report.Len()}).Info("report written")
	}
	if cfg.DBPath != "" {
		if err := saveRun(ctx, cfg, frames, log); err != nil {
			log.WithError(err).Error("record run")
			return 1
		}
	}

	fields := logrus.Fields{
		"sweeps":    res.Sweeps,
		"converged": res.Converged,
		"max_delta": res.Final.MaxDelta,
	}
	if mean, err := matrix.Mean(res.Final); err == nil {
		fields["mean"] = mean
	}
	log.WithFields(fields).Info("solve finished")

	return code
}

func saveRun(ctx context.Context, cfg config.Config, frames []plate.Snapshot, log *logrus.Logger) error {
	st, err := history.Open(ctx, cfg.DBPath, history.WithLogger(log))
	if err != nil {
		return err
	}
	defer st.Close()

	_, err = st.SaveRun(ctx, cfg.Plate, frames)
	return err
}

// writeFile creates path and hands it to write, reporting the first error
// of write or close.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f)
}
