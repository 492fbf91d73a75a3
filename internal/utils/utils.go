package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Errors returned by ParseTargetURL. Callers match them with errors.Is.
var (
	ErrEmptyURL          = errors.New("empty url")
	ErrNotAbsolute       = errors.New("url is not absolute")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrMissingHost       = errors.New("missing host")
	ErrInvalidHost       = errors.New("invalid host")
)

// hostProfile maps hosts like idna.Lookup but without the STD3 and hyphen
// rules, so names such as my_service or r3---sn-abc stay valid.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
)

// ParseTargetURL checks that raw is an absolute http(s) URL with a host that
// survives IDNA lookup. The returned *url.URL is the parse of raw; raw itself
// is what gets sent, so nothing here rewrites the caller's string.
func ParseTargetURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse url %s: %w", raw, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%s: %w", raw, ErrNotAbsolute)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%s: %w %q", raw, ErrUnsupportedScheme, u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%s: %w", raw, ErrMissingHost)
	}

	// IP literals are not domain names; idna would reject the IPv6 form.
	if net.ParseIP(host) == nil {
		if _, err := hostProfile.ToASCII(strings.ToLower(host)); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", raw, ErrInvalidHost, err)
		}
	}

	return u, nil
}

// HostOf returns the lower-cased, punycode host of raw, or "" if raw does not parse.
// It is used to label log lines and history rows.
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if puny, err := hostProfile.ToASCII(host); err == nil {
		host = puny
	}
	return host
}
