package scorelens

import (
	"github.com/rs/zerolog"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/reconciler"
)

// Option is a function that configures a Scorelens instance
type Option func(*config) error

type config struct {
	apiKey         string
	model          string
	logger         *zerolog.Logger
	reconcilerOpts []reconciler.Option
}

// WithAPIKey configures the Gemini API key used by the recognition
// backends.
func WithAPIKey(key string) Option {
	return func(c *config) error {
		if key == "" {
			return errors.NewConfigError("scorelens", "API key is empty", errors.ErrAPIKeyRequired)
		}
		c.apiKey = key
		return nil
	}
}

// WithModel configures the Gemini model. Defaults to the backend's
// standard model when unset.
func WithModel(model string) Option {
	return func(c *config) error {
		c.model = model
		return nil
	}
}

// WithLogger configures the logger used for per-scan tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithReconcilerOptions bypasses the built-in Gemini wiring and
// configures the pipeline directly. Useful for custom backends and for
// testing without the network.
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(c *config) error {
		if len(opts) == 0 {
			return errors.NewConfigError("scorelens", "no reconciler options given", errors.ErrInvalidInput)
		}
		c.reconcilerOpts = opts
		return nil
	}
}
