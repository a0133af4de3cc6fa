package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// AsyncDispatch enables Enqueue and the Results channel.
	AsyncDispatch bool

	// ActionBufferSize is the async queue size.
	ActionBufferSize int

	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic turns handler panics into error results.
	RecoverFromPanic bool

	// MaxRepeatCount caps action counts. Zero means no limit.
	MaxRepeatCount int
}

// DefaultConfig returns the configuration used by the editor.
func DefaultConfig() Config {
	return Config{
		ActionBufferSize: 64,
		RecoverFromPanic: true,
		MaxRepeatCount:   100,
	}
}

// WithAsyncDispatch returns a copy of the config with async dispatch enabled.
func (c Config) WithAsyncDispatch(bufferSize int) Config {
	c.AsyncDispatch = true
	if bufferSize > 0 {
		c.ActionBufferSize = bufferSize
	}
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithMaxRepeatCount returns a copy of the config with the max repeat count set.
func (c Config) WithMaxRepeatCount(n int) Config {
	c.MaxRepeatCount = n
	return c
}
