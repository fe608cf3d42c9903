// Package config handles configuration loading and validation for hidecols.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// GapChars lists the residue characters treated as alignment gaps.
	GapChars string       `yaml:"gap_chars"`
	Render   RenderConfig `yaml:"render"`
	Viewer   ViewerConfig `yaml:"viewer"`

	// HideGapsOf is the 1-based index of a sequence whose gap columns are
	// hidden on load. Zero disables it.
	HideGapsOf int `yaml:"hide_gaps_of"`
}

// RenderConfig controls how an alignment is drawn.
type RenderConfig struct {
	Marker        string `yaml:"marker"`         // drawn where hidden columns were removed
	ShowRuler     bool   `yaml:"show_ruler"`     // print a column ruler above the rows
	RulerInterval int    `yaml:"ruler_interval"` // columns between ruler labels
	Width         int    `yaml:"width"`          // visible columns per block; 0 = terminal width
	Color         bool   `yaml:"color"`          // style output with ANSI colors
	HiddenColor   string `yaml:"hidden_color"`   // lipgloss color of the hidden marker
	RulerColor    string `yaml:"ruler_color"`    // lipgloss color of the ruler
}

// ViewerConfig controls the interactive viewer.
type ViewerConfig struct {
	ScrollStep int `yaml:"scroll_step"` // visible columns moved per page scroll
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GapChars: "-.",
		Render: RenderConfig{
			Marker:        "|",
			ShowRuler:     true,
			RulerInterval: 10,
			Width:         0,
			Color:         true,
			HiddenColor:   "9",
			RulerColor:    "8",
		},
		Viewer: ViewerConfig{
			ScrollStep: 20,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.GapChars == "" {
		c.GapChars = defaults.GapChars
	}
	if c.Render.Marker == "" {
		c.Render.Marker = defaults.Render.Marker
	}
	if c.Render.RulerInterval == 0 {
		c.Render.RulerInterval = defaults.Render.RulerInterval
	}
	if c.Render.HiddenColor == "" {
		c.Render.HiddenColor = defaults.Render.HiddenColor
	}
	if c.Render.RulerColor == "" {
		c.Render.RulerColor = defaults.Render.RulerColor
	}
	if c.Viewer.ScrollStep == 0 {
		c.Viewer.ScrollStep = defaults.Viewer.ScrollStep
	}
}
