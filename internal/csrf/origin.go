package csrf

import (
	"net/url"
	"strings"
)

// IsSafeMethod reports whether method never needs the token. The match is
// case-sensitive.
func IsSafeMethod(method string) bool {
	switch method {
	case "GET", "HEAD", "OPTIONS", "TRACE":
		return true
	}
	return false
}

// Origin is the page's scheme and host as a browser exposes them:
// Protocol keeps its trailing colon and Host keeps any explicit port.
type Origin struct {
	Protocol string
	Host     string
}

// OriginOf extracts the Origin of an absolute page URL.
func OriginOf(page *url.URL) Origin {
	if page == nil {
		return Origin{}
	}
	return Origin{Protocol: page.Scheme + ":", Host: page.Host}
}

// String returns "protocol//host".
func (o Origin) String() string {
	return o.Protocol + "//" + o.Host
}

// IsSameOrigin reports whether target is an absolute or scheme-relative URL
// on this origin, or a relative reference that cannot name another origin.
func (o Origin) IsSameOrigin(target string) bool {
	if o.Host != "" {
		schemeRelative := "//" + o.Host
		absolute := o.Protocol + schemeRelative
		if target == absolute || strings.HasPrefix(target, absolute+"/") {
			return true
		}
		if target == schemeRelative || strings.HasPrefix(target, schemeRelative+"/") {
			return true
		}
	}
	return !isOriginBearing(target)
}

func isOriginBearing(target string) bool {
	return strings.HasPrefix(target, "//") ||
		strings.HasPrefix(target, "http:") ||
		strings.HasPrefix(target, "https:")
}
