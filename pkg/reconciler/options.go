package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/notation"
)

// Option is a function that configures a Reconciler instance
type Option func(*config) error

type config struct {
	structure   StructureReader
	handwriting HandwritingReader
	classifier  LayoutClassifier
	strategies  []Strategy
	notation    notation.Config
	logger      *zerolog.Logger
}

// WithStructureReader configures the document-structure backend.
func WithStructureReader(r StructureReader) Option {
	return func(c *config) error {
		if r == nil {
			return errors.NewConfigError("reconciler", "structure reader is nil", errors.ErrInvalidInput)
		}
		c.structure = r
		return nil
	}
}

// WithHandwritingReader configures the handwriting-recognition backend.
func WithHandwritingReader(r HandwritingReader) Option {
	return func(c *config) error {
		if r == nil {
			return errors.NewConfigError("reconciler", "handwriting reader is nil", errors.ErrInvalidInput)
		}
		c.handwriting = r
		return nil
	}
}

// WithLayoutClassifier configures the optional layout prober. Without
// one, every run assumes the default layout.
func WithLayoutClassifier(lc LayoutClassifier) Option {
	return func(c *config) error {
		c.classifier = lc
		return nil
	}
}

// WithStrategies replaces the default strategy set. The order is the
// launch order; results are still ranked by validation score.
func WithStrategies(strategies ...Strategy) Option {
	return func(c *config) error {
		if len(strategies) == 0 {
			return errors.NewConfigError("reconciler", "at least one strategy required", errors.ErrInvalidInput)
		}
		c.strategies = strategies
		return nil
	}
}

// WithNotationConfig overrides the relative-notation heuristic
// thresholds.
func WithNotationConfig(cfg notation.Config) Option {
	return func(c *config) error {
		c.notation = cfg
		return nil
	}
}

// WithLogger configures the logger used for per-run tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
