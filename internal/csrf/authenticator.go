package csrf

import (
	"net/http"
	"net/url"

	"github.com/raysh454/secrglue/internal/webclient"
)

// Authenticator holds the token read when a page was bound, together with
// that page's origin. It is never mutated after construction, so one value
// can serve every request the page makes, from any goroutine.
type Authenticator struct {
	origin   Origin
	token    string
	hasToken bool
}

// NewAuthenticator reads the token from cookieString once and remembers
// the origin of page.
func NewAuthenticator(page *url.URL, cookieString string) *Authenticator {
	token, ok := ReadToken(cookieString, CookieName)
	return &Authenticator{origin: OriginOf(page), token: token, hasToken: ok}
}

// Token returns the token and whether the cookie was present.
func (a *Authenticator) Token() (string, bool) { return a.token, a.hasToken }

func (a *Authenticator) Origin() Origin { return a.origin }

// Applies reports whether a request with this method and URL gets the header.
func (a *Authenticator) Applies(method, target string) bool {
	return !IsSafeMethod(method) && a.origin.IsSameOrigin(target)
}

// Intercept sets the token header on req when the request is state-changing
// and bound for the page's origin. A missing token is sent as an empty value
// and left for the server to reject.
func (a *Authenticator) Intercept(req *webclient.Request) {
	if req == nil || !a.Applies(req.Method, req.URL) {
		return
	}
	if req.Headers == nil {
		req.Headers = http.Header{}
	}
	req.Headers.Set(HeaderName, a.token)
}

// BeforeSend lets an Authenticator be registered as a webclient.Interceptor.
func (a *Authenticator) BeforeSend(req *webclient.Request) { a.Intercept(req) }

// Transport applies the Authenticator to a plain *http.Client.
type Transport struct {
	Auth *Authenticator
	// Base is the wrapped RoundTripper; nil means http.DefaultTransport.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Auth == nil || req == nil || req.URL == nil || !t.Auth.Applies(req.Method, req.URL.String()) {
		return base.RoundTrip(req)
	}
	out := req.Clone(req.Context())
	if out.Header == nil {
		out.Header = http.Header{}
	}
	out.Header.Set(HeaderName, t.Auth.token)
	return base.RoundTrip(out)
}
