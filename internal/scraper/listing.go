package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/boxdtools/boxdexport/internal/types"
)

// ratedClassRe matches the site's rating class token. The token
// encodes the rating in half-star units (rated-7 means 3.5 stars);
// it is an external wire convention, so anything that does not match
// the exact shape is ignored.
var ratedClassRe = regexp.MustCompile(`^rated-(\d+)$`)

// extractItems enumerates the film references embedded in one listing
// page, in document order. Components whose target link does not
// reference a film resource are discarded. No deduplication happens
// here; that is the orchestrator's job.
func extractItems(doc *goquery.Document) []types.ListingItem {
	var items []types.ListingItem

	doc.Find("div.react-component[data-target-link]").Each(func(_ int, sel *goquery.Selection) {
		link, _ := sel.Attr("data-target-link")
		if !strings.Contains(link, "/film/") {
			return
		}

		slug := filmSlug(link)
		if slug == "" {
			return
		}

		name := sel.AttrOr("data-item-name", "")
		if name == "" {
			name = slug
		}

		items = append(items, types.ListingItem{
			Slug:   slug,
			Name:   name,
			Rating: userRating(sel),
		})
	})

	return items
}

// filmSlug derives the slug from a target link: the final path segment
// after stripping leading and trailing slashes.
func filmSlug(targetLink string) string {
	parts := strings.Split(strings.Trim(targetLink, "/"), "/")
	return parts[len(parts)-1]
}

// userRating resolves the user's rating for one listing component by
// finding a rating indicator inside the nearest enclosing list item
// and decoding its class token. Absent indicator means NotRated.
func userRating(sel *goquery.Selection) string {
	li := sel.Closest("li")
	if li.Length() == 0 {
		return types.NotRated
	}

	rating := types.NotRated
	li.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		classes, ok := span.Attr("class")
		if !ok {
			return true
		}
		for _, cls := range strings.Fields(classes) {
			m := ratedClassRe.FindStringSubmatch(cls)
			if m == nil {
				continue
			}
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			rating = strconv.FormatFloat(float64(v)/2.0, 'f', 1, 64)
			return false
		}
		return true
	})
	return rating
}
