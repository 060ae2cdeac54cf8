package webclient

import (
	"context"
	"net/http"
	"net/url"
)

// Interceptor is a hook run immediately before a request is dispatched.
// It may set headers but must not block, delay or cancel the request.
type Interceptor interface {
	BeforeSend(req *Request)
}

// InterceptorFunc adapts a plain function to Interceptor.
type InterceptorFunc func(req *Request)

func (f InterceptorFunc) BeforeSend(req *Request) { f(req) }

type interceptingClient struct {
	next  WebClient
	hooks []Interceptor
}

// WithInterceptors returns a WebClient that runs hooks, in order, on every
// request before handing it to next. Hooks see the URL exactly as the caller
// wrote it, which may be relative.
func WithInterceptors(next WebClient, hooks ...Interceptor) WebClient {
	kept := make([]Interceptor, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			kept = append(kept, h)
		}
	}
	return &interceptingClient{next: next, hooks: kept}
}

func (c *interceptingClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	for _, h := range c.hooks {
		h.BeforeSend(req)
	}
	return c.next.Do(ctx, req)
}

func (c *interceptingClient) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (c *interceptingClient) Close() error { return c.next.Close() }

type baseURLClient struct {
	next WebClient
	base *url.URL
}

// WithBaseURL resolves relative request URLs against base before dispatch,
// the way a browser resolves them against the document location.
func WithBaseURL(next WebClient, base *url.URL) WebClient {
	return &baseURLClient{next: next, base: base}
}

func (c *baseURLClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if c.base != nil {
		if ref, err := url.Parse(req.URL); err == nil && !ref.IsAbs() {
			resolved := *req
			resolved.URL = c.base.ResolveReference(ref).String()
			req = &resolved
		}
	}
	return c.next.Do(ctx, req)
}

func (c *baseURLClient) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (c *baseURLClient) Close() error { return c.next.Close() }
