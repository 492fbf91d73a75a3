package webclient

import "context"

// WebClient sends prepared requests. Implementations must be safe for
// concurrent use; the dispatcher shares one instance across all goroutines.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}
