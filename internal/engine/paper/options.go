package paper

import "github.com/rs/zerolog"

// Option configures a Paper during creation.
type Option func(*Paper)

// WithLogger sets the logger used for transaction and commit tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Paper) {
		p.logger = logger.With().Str("component", "paper").Logger()
	}
}

// WithStrictWrites makes SetBlocks outside a transaction fail with
// ErrOutsideTransaction instead of overwriting the sequence.
func WithStrictWrites() Option {
	return func(p *Paper) {
		p.strict = true
	}
}
