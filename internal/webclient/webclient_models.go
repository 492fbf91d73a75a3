package webclient

import (
	"net/http"
	"time"
)

// Request is a fully prepared, not-yet-sent request for one URL.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte

	// HasBody distinguishes an explicit empty body from no body at all.
	HasBody bool
}

// Response is a buffered response. The body has been read in full and the
// underlying connection released.
type Response struct {
	Request    *Request
	Headers    http.Header
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}
