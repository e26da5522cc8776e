// Package boxdexport provides a public SDK for embedding the exporter
// as a library.
//
// Example usage:
//
//	client, err := boxdexport.New("someuser",
//	    boxdexport.WithTimeout(10*time.Second),
//	    boxdexport.WithOutput("csv", "films.csv"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.ScrapeAll(ctx, nil, 0)
//	client.Export("")
package boxdexport

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/boxdtools/boxdexport/internal/config"
	"github.com/boxdtools/boxdexport/internal/fetcher"
	"github.com/boxdtools/boxdexport/internal/scraper"
	"github.com/boxdtools/boxdexport/internal/storage"
	"github.com/boxdtools/boxdexport/internal/types"
)

// Client is the high-level API for scraping one user's film activity.
// It owns the result set for the lifetime of the run; records
// accumulate across ScrapeSection/ScrapeAll calls and are read by
// Export.
type Client struct {
	cfg     *config.Config
	logger  *slog.Logger
	fetcher fetcher.Fetcher
	scraper *scraper.Scraper
	results *types.ResultSet
}

// Option configures a Client.
type Option func(*options)

type options struct {
	cfg    *config.Config
	logger *slog.Logger
}

// WithBaseURL overrides the site root (useful for testing).
func WithBaseURL(base string) Option {
	return func(o *options) { o.cfg.Scraper.BaseURL = base }
}

// WithTimeout sets the per-request network timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.cfg.Fetcher.RequestTimeout = d }
}

// WithDelays sets the per-film and per-page courtesy delays.
func WithDelays(film, page time.Duration) Option {
	return func(o *options) {
		o.cfg.Scraper.FilmDelay = film
		o.cfg.Scraper.PageDelay = page
	}
}

// WithUserAgent sets a custom User-Agent.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.cfg.Fetcher.UserAgent = ua }
}

// WithOutput sets the export format and destination path.
func WithOutput(format, path string) Option {
	return func(o *options) {
		o.cfg.Export.Format = format
		o.cfg.Export.OutputPath = path
	}
}

// WithMongo additionally stores exported records in MongoDB.
func WithMongo(uri, database, collection string) Option {
	return func(o *options) {
		o.cfg.Export.MongoURI = uri
		o.cfg.Export.MongoDatabase = database
		o.cfg.Export.MongoCollection = collection
	}
}

// WithLogger supplies a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(o *options) { o.cfg.Logging.Level = "debug" }
}

// New creates a Client for the given username.
func New(username string, opts ...Option) (*Client, error) {
	o := &options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}

	if err := config.Validate(o.cfg); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		level := slog.LevelInfo
		if o.cfg.Logging.Level == "debug" {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	httpFetcher := fetcher.NewHTTPFetcher(o.cfg, logger)

	s, err := scraper.New(username, httpFetcher, o.cfg, logger)
	if err != nil {
		httpFetcher.Close()
		return nil, err
	}

	return &Client{
		cfg:     o.cfg,
		logger:  logger,
		fetcher: httpFetcher,
		scraper: s,
		results: types.NewResultSet(),
	}, nil
}

// ScrapeSection scrapes one named section. maxPages caps the listing
// pages when > 0.
func (c *Client) ScrapeSection(ctx context.Context, section string, maxPages int) error {
	return c.scraper.ScrapeSection(ctx, c.results, section, maxPages)
}

// ScrapeAll scrapes an ordered list of sections (all of them when
// sections is nil), isolating per-section failures.
func (c *Client) ScrapeAll(ctx context.Context, sections []string, maxPages int) error {
	return c.scraper.ScrapeSections(ctx, c.results, sections, maxPages)
}

// Export serializes the accumulated records and returns the written
// filename. path overrides the configured destination when non-empty;
// with no destination at all, a name is derived from the username and
// the current timestamp. An empty result set is a no-op.
func (c *Client) Export(path string) (string, error) {
	exportCfg := c.cfg.Export
	if path != "" {
		exportCfg.OutputPath = path
	}
	return storage.Export(c.results, &exportCfg, c.scraper.Username(), c.logger)
}

// Records returns the accumulated records in insertion order.
func (c *Client) Records() []types.FilmRecord {
	return c.results.Records()
}

// Len returns the number of unique films accumulated so far.
func (c *Client) Len() int {
	return c.results.Len()
}

// Close releases network resources.
func (c *Client) Close() error {
	return c.fetcher.Close()
}
