package webclient

import "time"

type Client string

const (
	ClientNetHTTP Client = "nethttp"
)

// Config selects and tunes the webclient backend.
type Config struct {
	Client Client

	// Timeout is the per-request client timeout. Zero means no timeout, which
	// leaves deadlines to the transport and the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns the nethttp backend with no client timeout.
func DefaultConfig() Config {
	return Config{Client: ClientNetHTTP}
}
