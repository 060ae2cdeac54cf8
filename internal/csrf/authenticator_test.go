package csrf_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/raysh454/secrglue/internal/csrf"
	"github.com/raysh454/secrglue/internal/webclient"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestAuthenticator_InterceptMatrix(t *testing.T) {
	t.Parallel()
	auth := csrf.NewAuthenticator(mustURL(t, "https://host/secr/"), "sessionid=abc; csrftoken=XYZ123")

	tests := []struct {
		method, url string
		wantHeader  bool
	}{
		{"POST", "/secr/x/", true},
		{"PUT", "https://host/secr/x/", true},
		{"DELETE", "//host/secr/x/", true},
		{"patch", "/secr/x/", true},
		{"GET", "/secr/x/", false},
		{"HEAD", "/secr/x/", false},
		{"OPTIONS", "/secr/x/", false},
		{"TRACE", "/secr/x/", false},
		{"POST", "https://evil.example/x", false},
		{"POST", "//evil.example/x", false},
	}
	for _, tt := range tests {
		req := &webclient.Request{Method: tt.method, URL: tt.url}
		auth.Intercept(req)
		got := req.Headers != nil && len(req.Headers.Values(csrf.HeaderName)) > 0
		if got != tt.wantHeader {
			t.Errorf("%s %s: header present = %v, want %v", tt.method, tt.url, got, tt.wantHeader)
		}
		if got && req.Headers.Get(csrf.HeaderName) != "XYZ123" {
			t.Errorf("%s %s: header = %q", tt.method, tt.url, req.Headers.Get(csrf.HeaderName))
		}
	}
}

func TestAuthenticator_Scenario_TokenPresent(t *testing.T) {
	t.Parallel()
	auth := csrf.NewAuthenticator(mustURL(t, "https://host/secr/areas/"), "sessionid=abc; csrftoken=XYZ123")
	req := &webclient.Request{Method: "POST", URL: "/secr/areas/add/"}

	auth.Intercept(req)

	if got := req.Headers.Get("X-CSRFToken"); got != "XYZ123" {
		t.Fatalf("expected X-CSRFToken XYZ123, got %q", got)
	}
}

func TestAuthenticator_Scenario_TokenAbsent(t *testing.T) {
	t.Parallel()
	auth := csrf.NewAuthenticator(mustURL(t, "https://host/secr/areas/"), "sessionid=abc")
	if _, ok := auth.Token(); ok {
		t.Fatal("expected token to be absent")
	}

	req := &webclient.Request{Method: "POST", URL: "/secr/areas/add/"}
	auth.Intercept(req)

	vals := req.Headers.Values(csrf.HeaderName)
	if len(vals) != 1 || vals[0] != "" {
		t.Fatalf("expected empty header value, got %v", vals)
	}
}

func TestAuthenticator_InterceptIsIdempotent(t *testing.T) {
	t.Parallel()
	auth := csrf.NewAuthenticator(mustURL(t, "https://host/"), "csrftoken=T")
	req := &webclient.Request{Method: "POST", URL: "/x", Headers: http.Header{"Accept": {"application/json"}}}

	auth.Intercept(req)
	auth.Intercept(req)

	if vals := req.Headers.Values(csrf.HeaderName); len(vals) != 1 || vals[0] != "T" {
		t.Errorf("expected exactly one token value, got %v", vals)
	}
	if req.Headers.Get("Accept") != "application/json" {
		t.Error("existing headers must be kept")
	}
}

func TestAuthenticator_InterceptNilRequest(t *testing.T) {
	t.Parallel()
	auth := csrf.NewAuthenticator(mustURL(t, "https://host/"), "")
	auth.Intercept(nil)
}

func TestAuthenticator_ConcurrentIntercept(t *testing.T) {
	t.Parallel()
	auth := csrf.NewAuthenticator(mustURL(t, "https://host/"), "csrftoken=shared")
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := &webclient.Request{Method: "POST", URL: "/secr/x/"}
			auth.BeforeSend(req)
			if req.Headers.Get(csrf.HeaderName) != "shared" {
				t.Errorf("unexpected token %q", req.Headers.Get(csrf.HeaderName))
			}
		}()
	}
	wg.Wait()
}

func TestTransport_AddsHeaderOnlyForSameOriginUnsafe(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	got := map[string]string{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		got[r.Method+" "+r.URL.Path] = r.Header.Get(csrf.HeaderName)
	}))
	defer ts.Close()

	auth := csrf.NewAuthenticator(mustURL(t, ts.URL+"/secr/"), "csrftoken=RT")
	client := &http.Client{Transport: &csrf.Transport{Auth: auth, Base: ts.Client().Transport}}

	post, _ := http.NewRequest(http.MethodPost, ts.URL+"/secr/order/", nil)
	if _, err := client.Do(post); err != nil {
		t.Fatalf("POST: %v", err)
	}
	if _, err := client.Get(ts.URL + "/secr/list/"); err != nil {
		t.Fatalf("GET: %v", err)
	}
	if post.Header.Get(csrf.HeaderName) != "" {
		t.Error("caller's request must not be mutated")
	}

	mu.Lock()
	defer mu.Unlock()
	if got["POST /secr/order/"] != "RT" {
		t.Errorf("POST token = %q", got["POST /secr/order/"])
	}
	if got["GET /secr/list/"] != "" {
		t.Errorf("GET must not carry token, got %q", got["GET /secr/list/"])
	}
}

func TestTransport_CrossOriginLeavesTokenOut(t *testing.T) {
	t.Parallel()
	var header string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get(csrf.HeaderName)
	}))
	defer ts.Close()

	auth := csrf.NewAuthenticator(mustURL(t, "https://datatracker.example/secr/"), "csrftoken=RT")
	client := &http.Client{Transport: &csrf.Transport{Auth: auth}}
	if _, err := client.Post(ts.URL+"/collect", "text/plain", nil); err != nil {
		t.Fatalf("POST: %v", err)
	}
	if header != "" {
		t.Errorf("token leaked cross-origin: %q", header)
	}
}
