package portadoc

import "context"

// Fetcher retrieves a raw page document from a URL.
// The core makes no assumption about how the page was retrieved;
// implementations own transport, timeouts, and rate limiting.
type Fetcher interface {
	// Fetch returns the raw HTML of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}
