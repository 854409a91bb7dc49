package models

// Recommendation filters accepted by the ranking endpoint and the
// recommendation cache. Filters are part of the cache key, so the strings
// must match what the clients send verbatim.
const (
	FilterAll         = "All"
	FilterHighlyRated = "Highly Rated"
)

// HighlyRatedThreshold is the minimum catalog rating for the
// "Highly Rated" filter.
const HighlyRatedThreshold = 4.5

// PreloadFilters are the filters warmed ahead of time for a user; these are
// the two the home screen requests on first paint.
var PreloadFilters = []string{FilterAll, FilterHighlyRated}
