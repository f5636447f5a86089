package baseline

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Laisky/baseline-mcp/library"
)

const (
	// DefaultLimit is used when the caller does not ask for a result count.
	DefaultLimit = 10
	// MinLimit and MaxLimit bound the result count sent upstream.
	MinLimit = 1
	MaxLimit = 20

	featuresPath = "/v1/features"
)

// Query is a request for baseline status of the features matching Terms.
type Query struct {
	Terms                 []string
	Limit                 int
	IncludeBrowserDetails bool
	IncludeUsageStats     bool
	IncludeTestResults    bool
	IncludeSpecs          bool
}

// NewQuery returns a Query for terms with every section enabled and the default limit.
func NewQuery(terms ...string) Query {
	return Query{
		Terms:                 terms,
		Limit:                 DefaultLimit,
		IncludeBrowserDetails: true,
		IncludeUsageStats:     true,
		IncludeTestResults:    true,
		IncludeSpecs:          true,
	}
}

// Validate rejects queries without any usable search term.
func (q Query) Validate() error {
	if len(q.Terms) == 0 {
		return NewValidationError("query", "query must contain at least one search term")
	}
	for i, term := range q.Terms {
		if strings.TrimSpace(term) == "" {
			return NewValidationError("query", "query item %d must not be empty", i)
		}
	}
	return nil
}

// ClampLimit forces limit into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	return min(max(limit, MinLimit), MaxLimit)
}

// BuildFeaturesURL returns the upstream search URL for terms.
// The limit parameter is clamped, never rejected.
func BuildFeaturesURL(apiBase string, terms []string, limit int) string {
	params := url.Values{}
	params.Set("q", library.JoinTerms(terms))
	params.Set("limit", strconv.Itoa(ClampLimit(limit)))

	return strings.TrimRight(apiBase, "/") + featuresPath + "?" + params.Encode()
}
