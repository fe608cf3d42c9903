package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is valid. All field problems are
// reported together as criterio.FieldErrors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if err := notNegative(c.HideGapsOf); err != nil {
		errs = errs.Append("hide_gaps_of", err)
	}
	if err := positive(c.Viewer.ScrollStep); err != nil {
		errs = errs.Append("viewer.scroll_step", err)
	}

	return criterio.ValidateStruct(
		criterio.Run("gap_chars", c.GapChars, notEmpty),
		errs.ToError(),
		c.Render.validate(),
	)
}

func (r *RenderConfig) validate() error {
	var errs criterio.FieldErrorsBuilder

	if utf8.RuneCountInString(r.Marker) != 1 {
		errs = errs.Append("render.marker", fmt.Errorf("must be a single character, got %q", r.Marker))
	}
	if err := positive(r.RulerInterval); err != nil {
		errs = errs.Append("render.ruler_interval", err)
	}
	if err := notNegative(r.Width); err != nil {
		errs = errs.Append("render.width", err)
	}

	return errs.ToError()
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func positive(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}

func notNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("cannot be negative, got %d", n)
	}
	return nil
}
