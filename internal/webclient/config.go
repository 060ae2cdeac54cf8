package webclient

import (
	"net/http"
	"time"
)

type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientChromedp Client = "chromedp"
)

// Config holds everything a backend constructor may need. It lives here
// rather than in app so the factory does not import app.
type Config struct {
	Client Client

	// Timeout bounds a single nethttp round trip. Zero means 30s.
	Timeout time.Duration

	// IdleAfter is how long chromedp waits for network silence before
	// reading the rendered document. Zero means 2s.
	IdleAfter time.Duration

	// Headful shows the browser window for the chromedp backend.
	Headful bool

	// Jar, when set, is attached to the nethttp client.
	Jar http.CookieJar
}
