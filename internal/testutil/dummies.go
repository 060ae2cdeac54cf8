// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// WarnCount returns how many warnings were recorded.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient.
// Responses are looked up by request path (query ignored); unknown paths get
// a 404. Set FailPaths[path] = true to force a transport error.
type DummyWebClient struct {
	ResponseDelay time.Duration
	Responses     map[string]string
	StatusCodes   map[string]int
	FailPaths     map[string]bool

	mu       sync.Mutex
	Requests []*webclient.Request
}

// NewDummyWebClient returns a client answering the given path→body pairs with 200.
func NewDummyWebClient(responses map[string]string) *DummyWebClient {
	return &DummyWebClient{Responses: responses}
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	cp := *req
	cp.Headers = req.Headers.Clone()
	d.mu.Lock()
	d.Requests = append(d.Requests, &cp)
	d.mu.Unlock()

	path := requestPath(req.URL)
	if d.FailPaths != nil && d.FailPaths[path] {
		return nil, &errString{"dummy fetch fail for " + req.URL}
	}

	body, ok := d.Responses[path]
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
	}
	if code, ok := d.StatusCodes[path]; ok {
		status = code
	}

	return &webclient.Response{
		Request:    req,
		Body:       []byte(body),
		Headers:    http.Header{"Content-Type": {"application/json"}},
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Get(ctx context.Context, url string) (*webclient.Response, error) {
	return d.Do(ctx, &webclient.Request{Method: "GET", URL: url})
}

func (d *DummyWebClient) Close() error { return nil }

// Recorded returns a copy of the requests seen so far.
func (d *DummyWebClient) Recorded() []*webclient.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*webclient.Request(nil), d.Requests...)
}

// RecordedTo returns the recorded requests whose path equals path.
func (d *DummyWebClient) RecordedTo(path string) []*webclient.Request {
	var out []*webclient.Request
	for _, r := range d.Recorded() {
		if requestPath(r.URL) == path {
			out = append(out, r)
		}
	}
	return out
}

func requestPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		p, _, _ := strings.Cut(raw, "?")
		return p
	}
	return u.Path
}

type errString struct{ s string }

func (e *errString) Error() string { return e.s }
