package demoserver

import "time"

// Config holds configuration for the demo server.
type Config struct {
	// Port is the port on which the demo server listens.
	Port int

	// MaxDelay caps /delay/{ms} so a typo cannot park a handler for hours.
	MaxDelay time.Duration

	// FeedBuffer is the per-subscriber queue on /ws/requests. A subscriber that
	// falls this far behind misses records instead of stalling the handlers.
	FeedBuffer int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:       9999,
		MaxDelay:   10 * time.Second,
		FeedBuffer: 64,
	}
}
