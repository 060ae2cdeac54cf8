package webclient

import (
	"net/http"
	"time"
)

// Request is one outgoing network call. URL may be relative to the page
// that issued it until a base URL is applied.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
	// Options contains backend-specific options like "render": "true" for chromedp
	Options map[string]string
}

type Response struct {
	Request *Request
	// FinalURL is where the document was actually served from once
	// redirects were followed. Empty means Request.URL.
	FinalURL   string
	Headers    http.Header
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Cookies parses the Set-Cookie headers of the response.
func (r *Response) Cookies() []*http.Cookie {
	if r == nil || r.Headers == nil {
		return nil
	}
	return (&http.Response{Header: r.Headers}).Cookies()
}

// Location returns the URL the response body belongs to.
func (r *Response) Location() string {
	if r == nil {
		return ""
	}
	if r.FinalURL != "" {
		return r.FinalURL
	}
	if r.Request != nil {
		return r.Request.URL
	}
	return ""
}
