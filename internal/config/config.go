package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for boxdexport.
type Config struct {
	Scraper Scraper `mapstructure:"scraper" yaml:"scraper"`
	Fetcher Fetcher `mapstructure:"fetcher" yaml:"fetcher"`
	Export  Export  `mapstructure:"export"  yaml:"export"`
	Logging Logging `mapstructure:"logging" yaml:"logging"`
}

// Scraper controls the scrape pipeline.
type Scraper struct {
	// BaseURL is the site root all request URLs are built from.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Sections is the ordered list of profile sections to scrape when
	// none are given on the command line.
	Sections []string `mapstructure:"sections" yaml:"sections"`

	// FilmDelay is the pause after each film detail fetch.
	FilmDelay time.Duration `mapstructure:"film_delay" yaml:"film_delay"`

	// PageDelay is the pause between listing pages.
	PageDelay time.Duration `mapstructure:"page_delay" yaml:"page_delay"`
}

// Fetcher controls the HTTP page fetcher.
type Fetcher struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"   yaml:"request_timeout"`
	UserAgent       string        `mapstructure:"user_agent"        yaml:"user_agent"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
}

// Export controls output of the accumulated records.
type Export struct {
	// Format selects the file backend: csv, json, or jsonl.
	Format string `mapstructure:"format" yaml:"format"`

	// OutputPath is the destination file. Empty means a default name
	// derived from the username and a timestamp.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	// MongoURI, when set, additionally writes records to MongoDB.
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// Logging controls logging behavior.
type Logging struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scraper: Scraper{
			BaseURL:   "https://letterboxd.com",
			Sections:  []string{"films", "reviews", "diary", "watchlist", "likes/films"},
			FilmDelay: 1500 * time.Millisecond,
			PageDelay: 2 * time.Second,
		},
		Fetcher: Fetcher{
			RequestTimeout:  10 * time.Second,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			FollowRedirects: true,
			MaxRedirects:    10,
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    10,
		},
		Export: Export{
			Format:          "csv",
			MongoDatabase:   "boxdexport",
			MongoCollection: "films",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}
