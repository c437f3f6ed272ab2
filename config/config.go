// Package config defines the settings shared by every model build in a process.
package config

import (
	"github.com/pkg/errors"

	"go.viam.com/kinemodel/logging"
	"go.viam.com/kinemodel/utils"
)

// Config holds process-wide model settings.
type Config struct {
	// ScaleFactor multiplies every length read from a document. Zero means 1.
	ScaleFactor float64 `json:"scale_factor,omitempty"`
	// Debug turns on debug logging.
	Debug bool `json:"debug,omitempty"`
	// FastSolve skips solver diagnostics.
	FastSolve bool `json:"fast_solve,omitempty"`
	// LogLevel overrides the level implied by Debug when set.
	LogLevel string `json:"log_level,omitempty"`
}

// Validate fills in defaults and checks the config for errors.
func (c *Config) Validate(path string) error {
	if c.ScaleFactor == 0 {
		c.ScaleFactor = utils.DefaultScaleFactor
	}
	if c.ScaleFactor < 0 {
		return errors.Wrapf(utils.NewInvalidScaleFactorError(c.ScaleFactor), "%s: scale_factor", path)
	}
	if c.LogLevel != "" {
		if _, err := logging.LevelFromString(c.LogLevel); err != nil {
			return errors.Wrapf(err, "%s: log_level", path)
		}
	}
	return nil
}

// Level returns the log level the config asks for.
func (c *Config) Level() logging.Level {
	if c.LogLevel != "" {
		if level, err := logging.LevelFromString(c.LogLevel); err == nil {
			return level
		}
	}
	if c.Debug {
		return logging.DEBUG
	}
	return logging.INFO
}

// Apply sets the process-wide scale factor and the logger level. It should run once, before any
// model is built.
func (c *Config) Apply(logger logging.Logger) error {
	if err := utils.SetScaleFactor(c.ScaleFactor); err != nil {
		return err
	}
	logger.SetLevel(c.Level())
	logger.Debugw("applied config", "scale_factor", c.ScaleFactor, "fast_solve", c.FastSolve)
	return nil
}
