package webclient

import (
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/raysh454/secrglue/internal/logging"
)

// RegisterDefaultBackends registers the nethttp and chromedp backends.
// NewWebClient calls it once; tests may call it directly.
func RegisterDefaultBackends() {
	RegisterBackend(string(ClientNetHTTP), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewNetHTTPClient(cfg, logger, nil)
	})

	RegisterBackend(string(ClientChromedp), func(cfg Config, logger logging.Logger) (WebClient, error) {
		idleAfter := cfg.IdleAfter
		if idleAfter <= 0 {
			idleAfter = 2 * time.Second
		}

		var opts []chromedp.ExecAllocatorOption
		if cfg.Headful {
			opts = append(opts, chromedp.Flag("headless", false))
		}

		client, err := NewChromeDPClient(idleAfter, logger, opts...)
		if err != nil {
			return nil, fmt.Errorf("create chromedp client: %w", err)
		}
		return client, nil
	})
}
