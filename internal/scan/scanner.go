package scan

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"nextread/internal/books"
	"nextread/internal/cards"
)

// Candidate is one card discovered on the host page. Malformed cards (no
// recognizable title) are reported with Malformed set so the orchestrator can
// retire them without queueing a fetch.
type Candidate struct {
	Card      cards.Handle
	Query     books.Query
	Malformed bool
}

// Source enumerates candidate cards on the host page. Implementations wrap
// whatever the host exposes: a live DOM bridge, an HTML snapshot, a fixture.
type Source interface {
	Scan(ctx context.Context) ([]Candidate, error)
}

// HTMLScanner discovers book cards in an HTML document using CSS selectors.
// Cards are identified by their id attribute when present; anonymous cards
// get a generated identity, so a re-created element is a new card.
type HTMLScanner struct {
	selector       string
	titleSelector  string
	authorSelector string
}

// NewHTMLScanner builds a scanner for the given card selector. Title and
// author are extracted from conventional child elements.
func NewHTMLScanner(cardSelector string) *HTMLScanner {
	if strings.TrimSpace(cardSelector) == "" {
		cardSelector = "div.bookContainer"
	}
	return &HTMLScanner{
		selector:       cardSelector,
		titleSelector:  ".bookTitle, h2, h3",
		authorSelector: ".bookAuthor, .author",
	}
}

// ScanReader parses an HTML document and returns the candidates found in
// document order.
func (s *HTMLScanner) ScanReader(_ context.Context, r io.Reader) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var candidates []Candidate
	doc.Find(s.selector).Each(func(_ int, sel *goquery.Selection) {
		id, ok := sel.Attr("id")
		if !ok || strings.TrimSpace(id) == "" {
			id = "card-" + uuid.NewString()
		}

		title := strings.TrimSpace(sel.Find(s.titleSelector).First().Text())
		author := strings.TrimSpace(sel.Find(s.authorSelector).First().Text())

		candidates = append(candidates, Candidate{
			Card:      cards.CardID(id),
			Query:     books.Query{Title: title, Author: author},
			Malformed: title == "",
		})
	})

	return candidates, nil
}

// ReaderSource adapts an HTMLScanner plus a document supplier into a Source.
// The supplier is invoked on every scan so watch mode sees fresh content.
type ReaderSource struct {
	scanner *HTMLScanner
	open    func() (io.ReadCloser, error)
}

// NewReaderSource builds a Source that re-reads the document on each scan.
func NewReaderSource(scanner *HTMLScanner, open func() (io.ReadCloser, error)) *ReaderSource {
	return &ReaderSource{scanner: scanner, open: open}
}

// Scan implements Source.
func (r *ReaderSource) Scan(ctx context.Context) ([]Candidate, error) {
	reader, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer reader.Close()
	return r.scanner.ScanReader(ctx, reader)
}
