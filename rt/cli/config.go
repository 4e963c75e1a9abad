// Package cli holds the command-line configuration shared by the ambient
// commands.
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/gekko3d/ambient"
)

// Config represents the command-line parameters common to every host.
type Config struct {
	Preset string
	File   string
	Width  int
	Height int
	Step   float64
	Debug  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Preset: "meadow", Width: 1280, Height: 720}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "built-in preset: "+strings.Join(ambient.Presets(), ", "))
	fs.StringVar(&c.File, "file", c.File, "TOML preset file, overrides -preset")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.Float64Var(&c.Step, "step", c.Step, "animation time per frame, 0 keeps the preset's")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

// LoadPreset resolves the preset named by -file or -preset.
func (c *Config) LoadPreset() (ambient.Preset, error) {
	if c.File != "" {
		return ambient.LoadPreset(c.File)
	}
	return ambient.LookupPreset(c.Preset)
}

// Options turns the flags into viewport options.
func (c *Config) Options(logger ambient.Logger) []ambient.Option {
	opts := []ambient.Option{ambient.WithLogger(logger)}
	if c.Step > 0 {
		opts = append(opts, ambient.WithStep(float32(c.Step)))
	}
	return opts
}

func (c *Config) Logger(prefix string) ambient.Logger {
	return ambient.NewDefaultLogger(prefix, c.Debug)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Step < 0 {
		return fmt.Errorf("invalid step %v", c.Step)
	}
	return nil
}
