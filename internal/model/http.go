package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Configuration errors. They are raised before any request is sent.
var (
	ErrUnsupportedMethod = errors.New("unsupported request method")
	ErrMalformedHeader   = errors.New("malformed header")
	ErrNoURLs            = errors.New("at least one url is required")
	ErrInvalidURL        = errors.New("invalid url")
)

// Method is one of the request methods reqs knows how to send.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists every supported method in the order the help text shows them.
var Methods = []Method{MethodGet, MethodPost, MethodPatch, MethodPut, MethodDelete}

// ParseMethod upper-cases s and returns the matching Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MethodGet, MethodPost, MethodPatch, MethodPut, MethodDelete:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedMethod, s, methodList())
}

func (m Method) String() string { return string(m) }

func methodList() string {
	names := make([]string, len(Methods))
	for i, m := range Methods {
		names[i] = string(m)
	}
	return strings.Join(names, "|")
}

// HeaderEntry is one "Name:Value" header split on its first colon.
type HeaderEntry struct {
	Name  string
	Value string
}

// ParseHeader splits raw on the first ':'. Everything after that colon,
// trimmed, is the value, so "X: a:b" yields ("X", "a:b").
func ParseHeader(raw string) (HeaderEntry, error) {
	name, value, ok := strings.Cut(raw, ":")
	if !ok {
		return HeaderEntry{}, fmt.Errorf("%w: %q has no ':'", ErrMalformedHeader, raw)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return HeaderEntry{}, fmt.Errorf("%w: %q has an empty name", ErrMalformedHeader, raw)
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return HeaderEntry{}, fmt.Errorf("%w: invalid name %q", ErrMalformedHeader, name)
	}
	value = strings.TrimSpace(value)
	if !httpguts.ValidHeaderFieldValue(value) {
		return HeaderEntry{}, fmt.Errorf("%w: invalid value for %q", ErrMalformedHeader, name)
	}
	return HeaderEntry{Name: name, Value: value}, nil
}
