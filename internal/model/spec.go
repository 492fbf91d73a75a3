package model

import (
	"fmt"

	"github.com/raysh454/reqs/internal/utils"
)

// RequestSpec is the request template shared by every target URL.
// It is immutable once built: fields are unexported and accessors hand out copies,
// so concurrent dispatch goroutines can share one *RequestSpec without locking.
type RequestSpec struct {
	urls    []string
	method  Method
	headers []string
	entries []HeaderEntry
	body    *string
}

// NewRequestSpec validates its inputs and returns a RequestSpec.
// Validation errors wrap ErrNoURLs, ErrInvalidURL or ErrMalformedHeader.
// Duplicate URLs are kept; each one is dispatched.
func NewRequestSpec(urls []string, method Method, headers []string, body *string) (*RequestSpec, error) {
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	method, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}

	for _, raw := range urls {
		if _, err := utils.ParseTargetURL(raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
	}

	entries := make([]HeaderEntry, 0, len(headers))
	for _, raw := range headers {
		e, err := ParseHeader(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	spec := &RequestSpec{
		urls:    append([]string(nil), urls...),
		method:  method,
		headers: append([]string(nil), headers...),
		entries: entries,
	}
	if body != nil {
		b := *body
		spec.body = &b
	}
	return spec, nil
}

// URLs returns the target URLs in the order given.
func (s *RequestSpec) URLs() []string {
	return append([]string(nil), s.urls...)
}

// Method returns the request method.
func (s *RequestSpec) Method() Method { return s.method }

// Headers returns the raw "Name:Value" strings in the order given.
func (s *RequestSpec) Headers() []string {
	return append([]string(nil), s.headers...)
}

// HeaderEntries returns the parsed headers in the order given.
func (s *RequestSpec) HeaderEntries() []HeaderEntry {
	return append([]HeaderEntry(nil), s.entries...)
}

// Body returns the request body and whether one was set. An empty body that
// was explicitly set (-d '') is reported as present.
func (s *RequestSpec) Body() (string, bool) {
	if s.body == nil {
		return "", false
	}
	return *s.body, true
}

// Len is the number of requests a dispatch of this spec produces.
func (s *RequestSpec) Len() int { return len(s.urls) }
