package errors

import (
	stderrors "errors"
	"log/slog"

	"git.home.luguber.info/inful/actiongraph/internal/action"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the actiongraph CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// Classify wraps an arbitrary error in a GraphError with a best-effort
// category. Already-classified errors pass through unchanged.
func Classify(err error) *GraphError {
	if err == nil {
		return nil
	}
	var ge *GraphError
	if stderrors.As(err, &ge) {
		return ge
	}
	var perr *action.PatternError
	if stderrors.As(err, &perr) {
		return Wrap(err, CategoryPattern, SeverityFatal, "invalid glob pattern").
			WithContext("pattern", perr.Pattern)
	}
	var cerr *action.ConfigError
	if stderrors.As(err, &cerr) {
		return Wrap(err, CategoryConfig, SeverityFatal, "invalid action configuration")
	}
	return Wrap(err, CategoryInternal, SeverityError, "unclassified error")
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch Classify(err).Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig, CategoryPattern:
		return 7 // Configuration error
	case CategoryState, CategoryNotify:
		return 8 // External system error
	case CategoryPlan:
		return 11 // Plan assembly error
	case CategoryWatch:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// Report logs the error with its structured context before exit.
func (a *CLIErrorAdapter) Report(err error) {
	if err == nil {
		return
	}
	ge := Classify(err)
	attrs := []any{slog.String("category", string(ge.Category))}
	if a.verbose {
		for k, v := range ge.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	a.logger.Error(ge.Message, attrs...)
}
