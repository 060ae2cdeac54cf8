// Package csrf attaches the anti-forgery token to outgoing mutating
// requests bound for the page's own origin, and keeps it away from every
// other origin.
package csrf

import (
	"net/url"
	"strings"
)

const (
	// CookieName is the cookie the server stores the token in.
	CookieName = "csrftoken"
	// HeaderName is the request header the server expects the token echoed in.
	HeaderName = "X-CSRFToken"
)

// ReadToken returns the decoded value of the first cookie in cookieString
// whose name is exactly name. cookieString uses the document.cookie shape:
// "a=1; b=2". The bool is false when no such cookie exists.
func ReadToken(cookieString, name string) (string, bool) {
	if cookieString == "" || name == "" {
		return "", false
	}
	prefix := name + "="
	for _, raw := range strings.Split(cookieString, ";") {
		cookie := strings.TrimSpace(raw)
		if !strings.HasPrefix(cookie, prefix) {
			continue
		}
		return decodeComponent(cookie[len(prefix):]), true
	}
	return "", false
}

// decodeComponent percent-decodes v without treating '+' as a space.
// Malformed escapes leave v untouched.
func decodeComponent(v string) string {
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}
