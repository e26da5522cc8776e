package types

// Sentinel field values used when a page does not yield the data.
const (
	// NotAvailable marks a field whose markup was absent or unparseable.
	NotAvailable = "N/A"

	// NotRated marks a film the user has not assigned a rating to.
	NotRated = "Not Rated"
)

// ListingItem is one film reference found on a listing page. It is
// transient: the orchestrator consumes it immediately to decide whether
// to fetch the film's detail page.
type ListingItem struct {
	// Slug is the site-unique film identifier (final path segment of
	// the film URL).
	Slug string

	// Name is a best-effort display name hint from the listing markup.
	// Falls back to the slug; the detail page title is authoritative.
	Name string

	// Rating is the user's rating on the 0.5-5.0 half-star scale,
	// formatted with one decimal, or NotRated.
	Rating string
}

// FilmDetails holds the invariant metadata extracted from a film's
// canonical page. Every field defaults independently when its markup
// is missing.
type FilmDetails struct {
	Title       string
	Year        string
	Genres      string
	VoteAverage string
	VoteCount   string
	Popularity  string
}

// FilmRecord is one row of the final export: film metadata joined with
// the owning user's rating. Tag names match the export column schema.
type FilmRecord struct {
	MovieID     string `json:"movie_id"     bson:"movie_id"`
	Username    string `json:"username"     bson:"username"`
	MovieName   string `json:"movie_name"   bson:"movie_name"`
	Year        string `json:"year"         bson:"year"`
	Genres      string `json:"genres"       bson:"genres"`
	Rating      string `json:"rating"       bson:"rating"`
	Popularity  string `json:"popularity"   bson:"popularity"`
	VoteAverage string `json:"vote_average" bson:"vote_average"`
	VoteCount   string `json:"vote_count"   bson:"vote_count"`
}

// NewFilmRecord merges a listing item's user rating with the detail
// page metadata into one export row.
func NewFilmRecord(slug, username, rating string, d *FilmDetails) FilmRecord {
	return FilmRecord{
		MovieID:     slug,
		Username:    username,
		MovieName:   d.Title,
		Year:        d.Year,
		Genres:      d.Genres,
		Rating:      rating,
		Popularity:  d.Popularity,
		VoteAverage: d.VoteAverage,
		VoteCount:   d.VoteCount,
	}
}

// Row returns the record's fields in export column order.
func (r FilmRecord) Row() []string {
	return []string{
		r.MovieID,
		r.Username,
		r.MovieName,
		r.Year,
		r.Genres,
		r.Rating,
		r.Popularity,
		r.VoteAverage,
		r.VoteCount,
	}
}

// ResultSet accumulates FilmRecords for the lifetime of one run,
// unique by slug. The first record seen for a slug wins; later
// encounters (the same film appearing in two sections) are dropped.
// It is threaded explicitly through orchestration calls and read,
// never mutated, by the exporter.
type ResultSet struct {
	records []FilmRecord
	index   map[string]int
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{
		index: make(map[string]int),
	}
}

// Add appends a record unless its slug has already been seen.
// Returns false when the record was dropped as a duplicate.
func (rs *ResultSet) Add(r FilmRecord) bool {
	if _, ok := rs.index[r.MovieID]; ok {
		return false
	}
	rs.index[r.MovieID] = len(rs.records)
	rs.records = append(rs.records, r)
	return true
}

// Has reports whether a record with the given slug exists.
func (rs *ResultSet) Has(slug string) bool {
	_, ok := rs.index[slug]
	return ok
}

// Get returns the record for a slug, if present.
func (rs *ResultSet) Get(slug string) (FilmRecord, bool) {
	i, ok := rs.index[slug]
	if !ok {
		return FilmRecord{}, false
	}
	return rs.records[i], true
}

// Len returns the number of unique records accumulated.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// Records returns the accumulated records in insertion order.
// The returned slice is a copy; mutating it does not affect the set.
func (rs *ResultSet) Records() []FilmRecord {
	out := make([]FilmRecord, len(rs.records))
	copy(out, rs.records)
	return out
}
