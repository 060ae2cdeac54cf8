package app

import (
	"time"

	"github.com/raysh454/secrglue/internal/utils"
	"github.com/raysh454/secrglue/internal/webclient"
)

// Config carries the settings a session needs. Command-line flags override
// individual fields.
type Config struct {
	// WebClient selects and tunes the backend that loads the page.
	WebClient webclient.Config

	// URL normalisation applied to the target before loading.
	URL utils.CanonicalizeOptions

	// Timeout bounds a whole run: page load, scripts and their requests.
	Timeout time.Duration
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		WebClient: webclient.Config{
			Client:    webclient.ClientNetHTTP,
			Timeout:   30 * time.Second,
			IdleAfter: 2 * time.Second,
		},
		URL: utils.CanonicalizeOptions{
			DefaultScheme: "https",
		},
		Timeout: 2 * time.Minute,
	}
}
