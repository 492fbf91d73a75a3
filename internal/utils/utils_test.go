package utils

import (
	"errors"
	"testing"
)

func TestParseTargetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"http", "http://example.com/get", nil},
		{"https with port and query", "https://example.com:8443/a?b=c", nil},
		{"ipv4 literal", "http://127.0.0.1:8080/", nil},
		{"ipv6 literal", "http://[::1]:8080/", nil},
		{"unicode host", "https://bücher.example/", nil},
		{"upper-case scheme", "HTTP://example.com", nil},
		{"underscore service name", "http://my_service:8080/get", nil},
		{"double hyphen label", "http://r3---sn-abc.googlevideo.com/x", nil},
		{"leading hyphen label", "http://-edge.example/", nil},
		{"empty", "   ", ErrEmptyURL},
		{"relative", "/get", ErrNotAbsolute},
		{"no scheme", "example.com/get", ErrNotAbsolute},
		{"ftp", "ftp://example.com/file", ErrUnsupportedScheme},
		{"missing host", "http:///path", ErrMissingHost},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, err := ParseTargetURL(tt.raw)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ParseTargetURL(%q) unexpected error: %v", tt.raw, err)
				}
				if u == nil {
					t.Fatal("nil url without error")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseTargetURL(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestHostOf(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"http://Example.COM:8080/x": "example.com",
		"https://bücher.example/":   "xn--bcher-kva.example",
		"::not a url":               "",
		"http://My_Service:8080/":   "my_service",
	}
	for in, want := range cases {
		if got := HostOf(in); got != want {
			t.Errorf("HostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
