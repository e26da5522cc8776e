package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/boxdtools/boxdexport/internal/types"
)

const fullDetailHTML = `<html><head>
<meta name="twitter:data2" content="4.32 out of 5">
</head><body>
<section>
  <h1 class="headline-1">The&nbsp;Long&nbsp;Title</h1>
  <small class="number"><a>1994</a></small>
</section>
<div id="genres">
  <a href="/films/genre/crime/">Crime</a>
  <a href="/films/genre/drama/">Drama</a>
</div>
<a href="/film/the-long-title/ratings/rating-histogram/">1,234,567&nbsp;ratings</a>
<a class="has-icon" href="/film/the-long-title/fans/">23,456 fans</a>
</body></html>`

func detailScraper(t *testing.T, html string) *Scraper {
	t.Helper()
	return newTestScraper(t, &stubFetcher{pages: map[string]string{
		testBase + "/film/some-film/": html,
	}})
}

func TestFilmDetailsFullPage(t *testing.T) {
	s := detailScraper(t, fullDetailHTML)

	d, err := s.filmDetails(context.Background(), "some-film")
	if err != nil {
		t.Fatalf("filmDetails: %v", err)
	}

	if d.Title != "The Long Title" {
		t.Errorf("non-breaking spaces should normalize, got %q", d.Title)
	}
	if d.Year != "1994" {
		t.Errorf("expected year 1994, got %q", d.Year)
	}
	if d.Genres != "Crime, Drama" {
		t.Errorf("expected joined genres, got %q", d.Genres)
	}
	if d.VoteAverage != "4.32" {
		t.Errorf("expected 4.32, got %q", d.VoteAverage)
	}
	if d.VoteCount != "1234567" {
		t.Errorf("thousands separators should strip, got %q", d.VoteCount)
	}
	if d.Popularity != "23456" {
		t.Errorf("expected 23456, got %q", d.Popularity)
	}
}

func TestFilmDetailsDefaultsOnAbsence(t *testing.T) {
	s := detailScraper(t, `<html><body><p>bare page</p></body></html>`)

	d, err := s.filmDetails(context.Background(), "some-film")
	if err != nil {
		t.Fatalf("filmDetails: %v", err)
	}

	for name, got := range map[string]string{
		"title":        d.Title,
		"year":         d.Year,
		"genres":       d.Genres,
		"vote average": d.VoteAverage,
		"vote count":   d.VoteCount,
	} {
		if got != types.NotAvailable {
			t.Errorf("%s should default to %q, got %q", name, types.NotAvailable, got)
		}
	}

	// Absence of a fan count means zero fans, not missing data.
	if d.Popularity != "0" {
		t.Errorf("popularity should default to 0, got %q", d.Popularity)
	}
}

func TestFilmDetailsMissingYearKeepsTitle(t *testing.T) {
	s := detailScraper(t, `<html><body>
		<h1 class="headline-1">Title Only</h1>
	</body></html>`)

	d, err := s.filmDetails(context.Background(), "some-film")
	if err != nil {
		t.Fatalf("a missing subfield must not fail the extraction: %v", err)
	}
	if d.Title != "Title Only" {
		t.Errorf("expected extracted title, got %q", d.Title)
	}
	if d.Year != types.NotAvailable {
		t.Errorf("expected %q year, got %q", types.NotAvailable, d.Year)
	}
}

func TestFilmDetailsMalformedRatingMeta(t *testing.T) {
	s := detailScraper(t, `<html><head>
		<meta name="twitter:data2" content="no numbers here">
	</head><body><h1 class="headline-1">X</h1></body></html>`)

	d, err := s.filmDetails(context.Background(), "some-film")
	if err != nil {
		t.Fatalf("filmDetails: %v", err)
	}
	if d.VoteAverage != types.NotAvailable {
		t.Errorf("unmatched meta content should default, got %q", d.VoteAverage)
	}
}

func TestFilmDetailsFetchFailure(t *testing.T) {
	s := newTestScraper(t, &stubFetcher{pages: map[string]string{}})

	_, err := s.filmDetails(context.Background(), "missing-film")
	if err == nil {
		t.Fatal("expected error for failed fetch")
	}
	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %T", err)
	}
}
