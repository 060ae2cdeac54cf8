// Package utils holds URL helpers shared by the CLI and the session.
package utils

import (
	"errors"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/idna"
)

var (
	ErrEmptyURL    = errors.New("empty url")
	ErrMissingHost = errors.New("missing host")
)

// CanonicalizeOptions controls optional canonicalization policies.
type CanonicalizeOptions struct {
	StripTrailingSlash bool   // treat /a and /a/ the same by removing trailing slash (except for root "/")
	DefaultScheme      string // if empty, require scheme in input; otherwise assume this scheme for schemeless URLs
	KeepFragment       bool
}

// Canonicalize returns a deterministic form of raw: lowercase scheme and
// host, punycode host, default port dropped, dot segments cleaned, query
// keys sorted and credentials removed. A trailing slash survives unless
// StripTrailingSlash is set, since secretariat pages key off it.
func Canonicalize(raw string, opts CanonicalizeOptions) (string, error) {
	u, err := CanonicalURL(raw, opts)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// CanonicalURL is Canonicalize returning the parsed URL.
func CanonicalURL(raw string, opts CanonicalizeOptions) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &url.Error{Op: "canonicalize", URL: raw, Err: ErrEmptyURL}
	}

	if opts.DefaultScheme != "" && !strings.Contains(raw, "://") {
		raw = opts.DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, &url.Error{Op: "canonicalize", URL: raw, Err: ErrMissingHost}
	}

	u.Scheme = strings.ToLower(u.Scheme)

	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}
	port := u.Port()
	switch {
	case (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443"), port == "":
		u.Host = host
		if strings.Contains(host, ":") {
			u.Host = "[" + host + "]"
		}
	default:
		u.Host = net.JoinHostPort(host, port)
	}

	u.User = nil

	trailing := strings.HasSuffix(u.Path, "/")
	cleanPath := path.Clean("/" + u.Path)
	if trailing && !opts.StripTrailingSlash && cleanPath != "/" {
		cleanPath += "/"
	}
	u.Path = cleanPath
	u.RawPath = ""

	if !opts.KeepFragment {
		u.Fragment = ""
	}

	if u.RawQuery != "" {
		q := u.Query()
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := url.Values{}
		for _, k := range keys {
			values := q[k]
			sort.Strings(values)
			for _, v := range values {
				ordered.Add(k, v)
			}
		}
		u.RawQuery = ordered.Encode()
	}
	return u, nil
}

// SameOrigin reports whether a and b share scheme, host and port.
func SameOrigin(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}
