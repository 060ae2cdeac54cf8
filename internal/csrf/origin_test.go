package csrf_test

import (
	"net/url"
	"testing"

	"github.com/raysh454/secrglue/internal/csrf"
)

func TestIsSafeMethod(t *testing.T) {
	t.Parallel()
	for _, m := range []string{"GET", "HEAD", "OPTIONS", "TRACE"} {
		if !csrf.IsSafeMethod(m) {
			t.Errorf("%s should be safe", m)
		}
	}
	for _, m := range []string{"POST", "PUT", "DELETE", "PATCH", "get", "post", "Head", "", "CONNECT"} {
		if csrf.IsSafeMethod(m) {
			t.Errorf("%q should not be safe", m)
		}
	}
}

func TestOriginOf(t *testing.T) {
	t.Parallel()
	u, _ := url.Parse("https://datatracker.example:8443/secr/areas/")
	o := csrf.OriginOf(u)
	if o.Protocol != "https:" || o.Host != "datatracker.example:8443" {
		t.Fatalf("unexpected origin %+v", o)
	}
	if o.String() != "https://datatracker.example:8443" {
		t.Errorf("String() = %q", o.String())
	}
	if (csrf.OriginOf(nil) != csrf.Origin{}) {
		t.Error("nil page should give the zero origin")
	}
}

func TestOrigin_IsSameOrigin(t *testing.T) {
	t.Parallel()
	page, _ := url.Parse("https://host/secr/areas/")
	o := csrf.OriginOf(page)

	tests := []struct {
		url  string
		want bool
	}{
		{"https://host/x", true},
		{"https://host", true},
		{"//host/x", true},
		{"//host", true},
		{"/relative/path", true},
		{"relative/path", true},
		{"?q=1", true},
		{"", true},
		{"https://other/x", false},
		{"http://host/x", false},
		{"//other-host/x", false},
		{"https://hostile.example/x", false},
		{"https://host.evil/x", false},
		{"https://host:8443/x", false},
		{"http:relative", false},
		{"https:", false},
	}
	for _, tt := range tests {
		if got := o.IsSameOrigin(tt.url); got != tt.want {
			t.Errorf("IsSameOrigin(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestOrigin_IsSameOrigin_WithPort(t *testing.T) {
	t.Parallel()
	page, _ := url.Parse("http://127.0.0.1:9999/secr/")
	o := csrf.OriginOf(page)
	if !o.IsSameOrigin("http://127.0.0.1:9999/secr/x/") {
		t.Error("expected same origin with matching port")
	}
	if o.IsSameOrigin("http://127.0.0.1/secr/x/") {
		t.Error("expected different origin without port")
	}
}
