// Package fetcher is the sole network access point of the pipeline.
// Every component that needs page content goes through a Fetcher.
package fetcher

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a URL and parses the response body into a
// traversable document. A failed fetch returns a nil document and an
// error the caller downgrades to "this resource yielded nothing";
// no retries are performed.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*goquery.Document, error)

	// Close releases resources.
	Close() error
}
