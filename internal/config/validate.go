package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	u, err := url.Parse(cfg.Scraper.BaseURL)
	if err != nil {
		return fmt.Errorf("scraper.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scraper.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("scraper.base_url must have a host")
	}
	if cfg.Scraper.FilmDelay < 0 {
		return fmt.Errorf("scraper.film_delay must be >= 0")
	}
	if cfg.Scraper.PageDelay < 0 {
		return fmt.Errorf("scraper.page_delay must be >= 0")
	}

	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	validFormats := map[string]bool{
		"csv": true, "json": true, "jsonl": true,
	}
	if !validFormats[cfg.Export.Format] {
		return fmt.Errorf("export.format %q is not supported (valid: csv, json, jsonl)", cfg.Export.Format)
	}
	if cfg.Export.MongoURI != "" {
		if cfg.Export.MongoDatabase == "" || cfg.Export.MongoCollection == "" {
			return fmt.Errorf("export.mongo_database and export.mongo_collection are required when export.mongo_uri is set")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateUsername checks that a username is safe to embed in URL paths.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}
	if strings.ContainsAny(username, "/?#%") {
		return fmt.Errorf("username %q contains URL-reserved characters", username)
	}
	return nil
}
