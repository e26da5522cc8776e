// Package scraper drives the scrape pipeline: resolve pagination for a
// section, extract film references from each listing page, dereference
// each new film to its detail page, and accumulate merged records.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/boxdtools/boxdexport/internal/config"
	"github.com/boxdtools/boxdexport/internal/fetcher"
	"github.com/boxdtools/boxdexport/internal/types"
)

// SectionLikes is the liked-films section; its listing URLs follow a
// different shape than the other sections.
const SectionLikes = "likes/films"

// DefaultSections returns the canonical scrape order. Rating-bearing
// sections come first so that when a film shows up again in a
// like-only section, the record that wins dedup carries the rating.
func DefaultSections() []string {
	return []string{"films", "reviews", "diary", "watchlist", SectionLikes}
}

// IsSection reports whether name is a known profile section.
func IsSection(name string) bool {
	for _, s := range DefaultSections() {
		if s == name {
			return true
		}
	}
	return false
}

// Scraper scrapes one user's film activity. It is single-threaded:
// every fetch blocks until completion or timeout, with fixed courtesy
// delays between films and pages.
type Scraper struct {
	username string
	baseURL  string
	fetcher  fetcher.Fetcher
	cfg      *config.Scraper
	logger   *slog.Logger
}

// New creates a Scraper for the given username.
func New(username string, f fetcher.Fetcher, cfg *config.Config, logger *slog.Logger) (*Scraper, error) {
	if err := config.ValidateUsername(username); err != nil {
		return nil, err
	}
	return &Scraper{
		username: username,
		baseURL:  strings.TrimRight(cfg.Scraper.BaseURL, "/"),
		fetcher:  f,
		cfg:      &cfg.Scraper,
		logger:   logger.With("component", "scraper", "username", username),
	}, nil
}

// Username returns the profile being scraped.
func (s *Scraper) Username() string { return s.username }

// ScrapeSection scrapes one profile section into rs, skipping films
// already recorded in this run. maxPages caps the number of listing
// pages when > 0. Fetch failures are logged and skipped; the only
// errors returned are an unknown section name and context cancellation.
func (s *Scraper) ScrapeSection(ctx context.Context, rs *types.ResultSet, section string, maxPages int) error {
	if !IsSection(section) {
		return fmt.Errorf("%w: %q", types.ErrUnknownSection, section)
	}

	total := s.pageCount(ctx, section)
	if maxPages > 0 && total > maxPages {
		total = maxPages
	}

	s.logger.Info("scraping section", "section", section, "pages", total)

	found := 0
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageURL := s.sectionURL(section, page)
		doc, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			s.logger.Warn("listing page fetch failed", "url", pageURL, "error", err)
			continue
		}

		items := extractItems(doc)
		if len(items) == 0 {
			s.logger.Info("no films on page", "section", section, "page", page)
			continue
		}
		s.logger.Debug("listing page parsed", "section", section, "page", page, "films", len(items))

		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}

			if prev, ok := rs.Get(item.Slug); ok {
				// First-seen record wins across the whole run. Surface
				// the cases where the dropped duplicate disagrees on
				// the rating so ordering effects stay visible.
				if prev.Rating != item.Rating {
					s.logger.Debug("duplicate dropped with different rating",
						"slug", item.Slug, "kept", prev.Rating, "dropped", item.Rating)
				} else {
					s.logger.Debug("skipping duplicate", "slug", item.Slug)
				}
				continue
			}

			details, err := s.filmDetails(ctx, item.Slug)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("film details unavailable", "slug", item.Slug, "error", err)
			} else {
				rs.Add(types.NewFilmRecord(item.Slug, s.username, item.Rating, details))
				found++
				s.logger.Info("film saved", "title", details.Title, "year", details.Year)
			}

			if err := sleep(ctx, s.cfg.FilmDelay); err != nil {
				return err
			}
		}

		if page < total {
			if err := sleep(ctx, s.cfg.PageDelay); err != nil {
				return err
			}
		}
	}

	s.logger.Info("section complete", "section", section, "found", found, "total_unique", rs.Len())
	return nil
}

// ScrapeSections runs ScrapeSection over an ordered list of sections
// (the default order when sections is empty). One section's failure is
// logged and the remaining sections proceed; context cancellation
// aborts the run immediately, preserving whatever rs has accumulated.
func (s *Scraper) ScrapeSections(ctx context.Context, rs *types.ResultSet, sections []string, maxPages int) error {
	if len(sections) == 0 {
		sections = DefaultSections()
	}

	s.logger.Info("scrape starting", "sections", strings.Join(sections, ", "))

	for _, section := range sections {
		if err := s.ScrapeSection(ctx, rs, section, maxPages); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.logger.Info("scrape interrupted", "section", section, "records", rs.Len())
				return err
			}
			s.logger.Error("section failed", "section", section, "error", err)
			continue
		}
	}

	s.logger.Info("scrape complete", "records", rs.Len())
	return nil
}

// sectionURL builds a listing page URL. The liked-films section nests
// one level deeper (/{user}/likes/films/); its section name carries
// the extra path segment.
func (s *Scraper) sectionURL(section string, page int) string {
	return s.firstPageURL(section) + "page/" + strconv.Itoa(page) + "/"
}

func (s *Scraper) firstPageURL(section string) string {
	return s.baseURL + "/" + s.username + "/" + section + "/"
}

// sleep blocks for d or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
