package dispatch

// Config controls how a batch is fanned out.
type Config struct {
	// MaxConcurrency caps in-flight requests. Zero or negative means every
	// request starts immediately.
	MaxConcurrency int
}

// DefaultConfig returns the unbounded policy.
func DefaultConfig() Config {
	return Config{MaxConcurrency: 0}
}
