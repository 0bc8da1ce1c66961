// Package config loads the harness configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfig []byte

var ErrInvalidConfig = errors.New("config: invalid configuration")

var validLevels = []string{"ERROR", "WARNING", "NOTICE", "INFO", "DEBUG"}

// Logging is the logging configuration
type Logging struct {
	// Level is one of ERROR, WARNING, NOTICE, INFO, DEBUG
	Level string
}

// Renderer is the engine configuration
type Renderer struct {
	FramebufferWidth  int
	FramebufferHeight int
	FrameInterval     time.Duration
}

// Framebuffer returns the configured framebuffer size
func (r *Renderer) Framebuffer() image.Point {
	return image.Pt(r.FramebufferWidth, r.FramebufferHeight)
}

// Journal is the renderer call journal configuration
type Journal struct {
	Disable     bool
	MaxRecords  int
	MaxSessions int
}

// Sample selects the sample launched at startup
type Sample struct {
	ID int
}

// Config is the top level harness configuration
type Config struct {
	Logging  *Logging
	Renderer *Renderer
	Journal  *Journal
	Sample   *Sample
}

// Default returns the embedded default configuration
func Default() *Config {
	cfg, err := Load(defaultConfig)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load parses and validates a TOML configuration. Sections missing from b
// keep their default values.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := toml.Unmarshal(defaultConfig, cfg); err != nil {
		return nil, err
	}
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("%w: undecoded keys %v", ErrInvalidConfig, undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads and validates the configuration file at path
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// FixupAndValidate normalizes the configuration and checks its values
func (c *Config) FixupAndValidate() error {
	if c.Logging == nil || c.Renderer == nil || c.Journal == nil || c.Sample == nil {
		return fmt.Errorf("%w: missing section", ErrInvalidConfig)
	}
	c.Logging.Level = strings.ToUpper(c.Logging.Level)
	valid := false
	for _, l := range validLevels {
		if c.Logging.Level == l {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Renderer.FramebufferWidth <= 0 || c.Renderer.FramebufferHeight <= 0 {
		return fmt.Errorf("%w: framebuffer must be non-empty", ErrInvalidConfig)
	}
	if c.Renderer.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive", ErrInvalidConfig)
	}
	if c.Journal.MaxRecords <= 0 || c.Journal.MaxSessions <= 0 {
		return fmt.Errorf("%w: journal bounds must be positive", ErrInvalidConfig)
	}
	if c.Sample.ID < 0 {
		return fmt.Errorf("%w: negative sample id", ErrInvalidConfig)
	}
	return nil
}
