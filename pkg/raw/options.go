package raw

import (
	"fmt"

	"github.com/picatz/rawjwt/pkg/diag"
)

type config struct {
	diag diag.Sink
}

// Option configures a Token at construction time.
type Option func(*config) error

// WithDiagnostics sets the sink that receives recoverable decode, parse
// and serialization problems. The default writes warnings to the logrus
// standard logger.
func WithDiagnostics(sink diag.Sink) Option {
	return func(c *config) error {
		if sink == nil {
			return fmt.Errorf("diagnostic sink cannot be nil")
		}
		c.diag = sink
		return nil
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		diag: diag.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("option error: %w", err)
		}
	}

	return c, nil
}
