// Package config loads the scanner's tunable limits from an optional
// YAML document, giving the teacher's gopkg.in/yaml.v3 dependency a
// home now that it no longer backs a Ruby YAML.load/.dump builtin.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits holds the scanner knobs a caller may override. Load fills
// fields left at zero from Default; lexer.WithLimits uses the value it
// is given as is.
type Limits struct {
	// MaxStringConstant is the maximum number of decoded characters a
	// string literal may contain before StringConstantTooLong fires.
	// The specification fixes this at 1024; this field exists only so
	// test fixtures and tooling can probe the boundary without
	// recompiling the recognizer.
	MaxStringConstant int `yaml:"max_string_constant"`

	// CommentDepthWarn, when non-zero, makes the recognizer emit a
	// diagnostic line to its Tracer (if one is set) whenever block
	// comment nesting reaches this depth. It never changes scanning
	// semantics or the emitted token/error stream.
	CommentDepthWarn int `yaml:"comment_depth_warn"`
}

// Default returns the specification's built-in limits.
func Default() Limits {
	return Limits{
		MaxStringConstant: 1024,
		CommentDepthWarn:  0,
	}
}

// Load reads and unmarshals the YAML document at path, filling in any
// field left at its zero value with Default's value. An empty path
// returns Default() unchanged.
func Load(path string) (Limits, error) {
	limits := Default()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("config: could not read %s: %w", path, err)
	}

	var overrides Limits
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Limits{}, fmt.Errorf("config: could not parse %s: %w", path, err)
	}

	if overrides.MaxStringConstant > 0 {
		limits.MaxStringConstant = overrides.MaxStringConstant
	}
	if overrides.CommentDepthWarn > 0 {
		limits.CommentDepthWarn = overrides.CommentDepthWarn
	}
	return limits, nil
}
