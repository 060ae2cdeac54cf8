package webclient

import (
	"context"
)

// WebClient dispatches page requests. Implementations must be safe for
// concurrent use: page lookups run on their own goroutines.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
