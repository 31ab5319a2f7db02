// SPDX-License-Identifier: MIT

// Package config resolves the isotherm command settings.
//
// Precedence, lowest first: plate.DefaultConfig, ISOTHERM_* environment
// variables, command-line flags. Environment values are read through a
// getenv function so callers (and tests) decide where they come from; the
// command loads a .env file into the process environment before calling Load.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/isotherm/plate"
)

// EnvPrefix prefixes every environment key, e.g. ISOTHERM_ROWS.
const EnvPrefix = "ISOTHERM_"

// Config is the fully resolved command configuration.
type Config struct {
	Plate plate.Config

	// MaxSweeps caps the solve; 0 means no cap.
	MaxSweeps int

	// PNGPath, HTMLPath and DBPath enable the optional outputs when non-empty.
	PNGPath  string
	HTMLPath string
	DBPath   string

	LogLevel logrus.Level

	// Quiet suppresses the per-sweep console trace.
	Quiet bool
}

// Default returns the reference plate with no optional outputs.
func Default() Config {
	return Config{
		Plate:    plate.DefaultConfig(),
		LogLevel: logrus.InfoLevel,
	}
}

// setting binds one flag name (and its environment key) to a Config field.
type setting struct {
	key   string
	usage string
	value flag.Value
}

// Load resolves the configuration from getenv and args (without the program
// name). A nil getenv skips the environment.
//
// Errors: ErrInvalidValue, ErrNegativeTolerance, plate validation errors,
// flag.ErrHelp when -h is given.
func Load(args []string, getenv func(string) string) (Config, error) {
	return load(args, getenv, io.Discard)
}

// LoadWithUsage is Load with flag errors and usage written to out.
func LoadWithUsage(args []string, getenv func(string) string, out io.Writer) (Config, error) {
	return load(args, getenv, out)
}

func load(args []string, getenv func(string) string, out io.Writer) (Config, error) {
	cfg := Default()
	settings := cfg.settings()

	if getenv != nil {
		for _, s := range settings {
			key := EnvKey(s.key)
			raw := strings.TrimSpace(getenv(key))
			if raw == "" {
				continue
			}
			if err := s.value.Set(raw); err != nil {
				return Config{}, fmt.Errorf("%s=%q: %w", key, raw, ErrInvalidValue)
			}
		}
	}

	fs := flag.NewFlagSet("isotherm", flag.ContinueOnError)
	fs.SetOutput(out)
	for _, s := range settings {
		fs.Var(s.value, s.key, s.usage)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument %q: %w", fs.Arg(0), ErrInvalidValue)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the plate and the command-only constraints.
func (c Config) Validate() error {
	if err := c.Plate.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Plate.Tolerance < 0 {
		return fmt.Errorf("%g: %w", c.Plate.Tolerance, ErrNegativeTolerance)
	}
	if c.MaxSweeps < 0 {
		return fmt.Errorf("max-sweeps %d: %w", c.MaxSweeps, ErrInvalidValue)
	}

	return nil
}

// EnvKey maps a flag name to its environment variable, e.g. "max-sweeps"
// to "ISOTHERM_MAX_SWEEPS".
func EnvKey(name string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func (c *Config) settings() []setting {
	return []setting{
		{"rows", "number of grid rows (>= 3)", (*intValue)(&c.Plate.Rows)},
		{"cols", "number of grid columns (>= 3)", (*intValue)(&c.Plate.Cols)},
		{"top", "top edge temperature, corners included", (*floatValue)(&c.Plate.Top)},
		{"bottom", "bottom edge temperature, corners included", (*floatValue)(&c.Plate.Bottom)},
		{"left", "left edge temperature", (*floatValue)(&c.Plate.Left)},
		{"right", "right edge temperature", (*floatValue)(&c.Plate.Right)},
		{"interior", "starting temperature of interior cells", (*floatValue)(&c.Plate.InteriorStart)},
		{"tolerance", "largest per-cell change still counted as converged", (*floatValue)(&c.Plate.Tolerance)},
		{"max-sweeps", "stop after this many sweeps (0 = until equilibrium)", (*intValue)(&c.MaxSweeps)},
		{"png", "write a heatmap of the final grid to this PNG file", (*stringValue)(&c.PNGPath)},
		{"html", "write an interactive report of every sweep to this HTML file", (*stringValue)(&c.HTMLPath)},
		{"db", "record the run in this SQLite database", (*stringValue)(&c.DBPath)},
		{"log-level", "log level (debug, info, warn, error)", (*levelValue)(&c.LogLevel)},
		{"quiet", "do not print the per-sweep trace", (*boolValue)(&c.Quiet)},
	}
}

type intValue int

func (v *intValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*v = intValue(n)
	return nil
}

func (v *intValue) String() string { return strconv.Itoa(int(*v)) }

type floatValue float64

func (v *floatValue) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v = floatValue(f)
	return nil
}

func (v *floatValue) String() string { return strconv.FormatFloat(float64(*v), 'g', -1, 64) }

type stringValue string

func (v *stringValue) Set(s string) error { *v = stringValue(s); return nil }

func (v *stringValue) String() string { return string(*v) }

type boolValue bool

func (v *boolValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v = boolValue(b)
	return nil
}

func (v *boolValue) String() string { return strconv.FormatBool(bool(*v)) }

// IsBoolFlag lets -quiet stand alone on the command line.
func (v *boolValue) IsBoolFlag() bool { return true }

type levelValue logrus.Level

func (v *levelValue) Set(s string) error {
	l, err := logrus.ParseLevel(s)
	if err != nil {
		return err
	}
	*v = levelValue(l)
	return nil
}

func (v *levelValue) String() string { return logrus.Level(*v).String() }
