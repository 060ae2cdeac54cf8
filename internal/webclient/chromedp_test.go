package webclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/raysh454/secrglue/internal/logging"
)

// Construction is lazy: no browser starts until the first navigation, so
// these run without Chrome installed.

func TestChromeDPClient_RejectsNonGET(t *testing.T) {
	t.Parallel()
	client, err := NewChromeDPClient(time.Second, logging.NewNopLogger())
	if err != nil {
		t.Skipf("chromedp allocator unavailable: %v", err)
	}
	defer client.Close()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		_, err := client.Do(context.Background(), &Request{Method: method, URL: "http://127.0.0.1/"})
		if !errors.Is(err, ErrUnsupportedMethod) {
			t.Errorf("%s: expected ErrUnsupportedMethod, got %v", method, err)
		}
	}
}

func TestChromeDPClient_NilRequest(t *testing.T) {
	t.Parallel()
	client, err := NewChromeDPClient(time.Second, nil)
	if err != nil {
		t.Skipf("chromedp allocator unavailable: %v", err)
	}
	defer client.Close()

	if _, err := client.Do(context.Background(), nil); !errors.Is(err, ErrNilRequest) {
		t.Fatalf("expected ErrNilRequest, got %v", err)
	}
}

func TestBrowserCookie(t *testing.T) {
	t.Parallel()
	c := browserCookie(&network.Cookie{
		Name:     "csrftoken",
		Value:    "abc",
		Path:     "/",
		Domain:   "127.0.0.1",
		HTTPOnly: false,
		Expires:  1893456000,
	})
	if c.Name != "csrftoken" || c.Value != "abc" || c.Path != "/" {
		t.Fatalf("unexpected cookie %+v", c)
	}
	if c.HttpOnly {
		t.Error("csrftoken must stay readable by page script")
	}
	if c.Expires.Unix() != 1893456000 {
		t.Errorf("expires = %v", c.Expires)
	}

	session := browserCookie(&network.Cookie{Name: "sessionid", Value: "s", HTTPOnly: true, Expires: -1})
	if !session.HttpOnly {
		t.Error("HttpOnly flag lost")
	}
	if !session.Expires.IsZero() {
		t.Errorf("session cookie should not expire, got %v", session.Expires)
	}
}
