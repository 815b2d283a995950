package books

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownAuthor is the sentinel token used in cache keys when a card carries
// no author.
const UnknownAuthor = "unknown"

// Query identifies one book as discovered on a card. Author may be empty;
// two queries that differ only in author resolve to different cache keys.
type Query struct {
	Title  string
	Author string
}

// IsZero reports whether the query carries no usable title.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Title) == ""
}

// String renders the query for logs and search requests.
func (q Query) String() string {
	if strings.TrimSpace(q.Author) == "" {
		return strings.TrimSpace(q.Title)
	}
	return strings.TrimSpace(q.Title) + " " + strings.TrimSpace(q.Author)
}

var keyCaser = cases.Lower(language.Und)

// CacheKey derives the stable cache key for a query: lower-cased and trimmed
// title and author joined under the "book:" prefix. An absent author maps to
// the UnknownAuthor sentinel, so looking up a title-only query never collides
// with an authored one.
func CacheKey(q Query) string {
	title := keyCaser.String(strings.TrimSpace(q.Title))
	author := keyCaser.String(strings.TrimSpace(q.Author))
	if author == "" {
		author = UnknownAuthor
	}
	return "book:" + title + ":" + author
}
