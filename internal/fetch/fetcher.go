package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"nextread/internal/books"
)

// Fetcher resolves a book query to a metadata record via the external
// catalog source. An empty record with a nil error means the source had
// nothing for the query.
type Fetcher interface {
	Fetch(ctx context.Context, q books.Query) (books.Metadata, error)
}

// CatalogFetcher queries the catalog's search page and extracts the first
// matching result with goquery.
type CatalogFetcher struct {
	transport Transport
	baseURL   string
}

// NewCatalogFetcher builds a fetcher against the given catalog base URL.
func NewCatalogFetcher(transport Transport, baseURL string) *CatalogFetcher {
	return &CatalogFetcher{
		transport: transport,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

var (
	ratingPattern = regexp.MustCompile(`([0-9]+\.[0-9]+)\s+avg rating`)
	countPattern  = regexp.MustCompile(`([0-9][0-9,]*)\s+ratings?`)
	yearPattern   = regexp.MustCompile(`published\s+([0-9]{4})`)
)

// Fetch implements Fetcher.
func (f *CatalogFetcher) Fetch(ctx context.Context, q books.Query) (books.Metadata, error) {
	searchURL := f.baseURL + "/search?q=" + url.QueryEscape(q.String())

	payload, err := f.transport.Fetch(ctx, searchURL)
	if err != nil {
		return books.Metadata{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return books.Metadata{}, fmt.Errorf("parse search results: %w", err)
	}

	result := doc.Find("tr[itemtype='http://schema.org/Book']").First()
	if result.Length() == 0 {
		return books.Metadata{}, nil
	}

	md := books.Metadata{}
	if href, ok := result.Find("a.bookTitle").First().Attr("href"); ok {
		md.SourceURL = f.resolveURL(href)
	}
	if src, ok := result.Find("img.bookCover").First().Attr("src"); ok {
		md.CoverURL = src
	}

	details := result.Find("span.minirating").First().Text() + " " + result.Find(".greyText").Text()
	if m := ratingPattern.FindStringSubmatch(details); m != nil {
		md.Rating = m[1]
	}
	if m := countPattern.FindStringSubmatch(details); m != nil {
		md.RatingCount = m[1]
	}
	if m := yearPattern.FindStringSubmatch(details); m != nil {
		md.Year = m[1]
	}
	md.PageCount = strings.TrimSpace(result.Find("span.pageCount").First().Text())

	return md, nil
}

func (f *CatalogFetcher) resolveURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return f.baseURL + href
}
