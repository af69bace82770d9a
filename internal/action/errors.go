package action

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternError reports a malformed include or exclude glob pattern.
// It wraps doublestar.ErrBadPattern so callers can match with errors.Is.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: %v", e.Pattern, doublestar.ErrBadPattern)
}

func (e *PatternError) Unwrap() error {
	return doublestar.ErrBadPattern
}

// ConfigError reports an invalid build action configuration, such as an
// empty package or a missing builder.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid build action: " + e.Reason
}
