package scraper

import (
	"context"
	"strconv"
	"strings"
)

// pageCount resolves how many listing pages a section has by reading
// the highest page-number link from the pagination control on the
// section's first page. Absence of evidence means a single page: a
// failed fetch, a missing control, or an unparseable value all
// resolve to 1 rather than failing the caller.
func (s *Scraper) pageCount(ctx context.Context, section string) int {
	doc, err := s.fetcher.Fetch(ctx, s.firstPageURL(section))
	if err != nil {
		s.logger.Warn("pagination fetch failed", "section", section, "error", err)
		return 1
	}

	last := doc.Find("div.pagination li.paginate-page").Last().Text()
	n, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
