package scraper

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/boxdtools/boxdexport/internal/types"
)

var (
	// voteAverageRe pulls the numeric prefix out of the machine-readable
	// rating summary ("3.9 out of 5").
	voteAverageRe = regexp.MustCompile(`([\d.]+)\s+out of`)

	// groupedNumberRe matches a digit run with thousands separators.
	groupedNumberRe = regexp.MustCompile(`[\d][\d,]*`)
)

// filmDetails fetches a film's canonical page and extracts its
// invariant metadata. An error is returned only for a failed fetch;
// every field defaults independently when its markup is absent, so a
// sparse page still yields a usable result.
func (s *Scraper) filmDetails(ctx context.Context, slug string) (*types.FilmDetails, error) {
	filmURL := s.baseURL + "/film/" + slug + "/"
	doc, err := s.fetcher.Fetch(ctx, filmURL)
	if err != nil {
		return nil, err
	}

	d := &types.FilmDetails{
		Title:       types.NotAvailable,
		Year:        types.NotAvailable,
		Genres:      types.NotAvailable,
		VoteAverage: types.NotAvailable,
		VoteCount:   types.NotAvailable,
		Popularity:  "0",
	}

	if title := strings.TrimSpace(doc.Find("h1.headline-1").First().Text()); title != "" {
		d.Title = strings.ReplaceAll(title, " ", " ")
	}

	if year := strings.TrimSpace(doc.Find("small.number").First().Text()); year != "" {
		d.Year = year
	}

	var genres []string
	doc.Find(`a[href*="/films/genre/"]`).Each(func(_ int, a *goquery.Selection) {
		if g := strings.TrimSpace(a.Text()); g != "" {
			genres = append(genres, g)
		}
	})
	if len(genres) > 0 {
		d.Genres = strings.Join(genres, ", ")
	}

	if content, ok := doc.Find(`meta[name="twitter:data2"]`).Attr("content"); ok {
		if m := voteAverageRe.FindStringSubmatch(content); m != nil {
			d.VoteAverage = m[1]
		}
	}

	if text := doc.Find(`a[href*="rating-histogram"]`).First().Text(); text != "" {
		if m := groupedNumberRe.FindString(text); m != "" {
			d.VoteCount = strings.ReplaceAll(m, ",", "")
		}
	}

	// Absence of a fan count is zero fans, not missing data.
	if text := doc.Find(`a.has-icon[href*="/fans/"]`).First().Text(); text != "" {
		if m := groupedNumberRe.FindString(text); m != "" {
			d.Popularity = strings.ReplaceAll(m, ",", "")
		}
	}

	return d, nil
}
