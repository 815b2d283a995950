package scan

import (
	"context"
	"strings"
	"testing"
)

const samplePage = `
<html><body>
  <div class="bookContainer" id="card-1">
    <h2 class="bookTitle">The Dispossessed</h2>
    <span class="bookAuthor">Ursula K. Le Guin</span>
  </div>
  <div class="bookContainer" id="card-2">
    <h2 class="bookTitle">Dune</h2>
  </div>
  <div class="bookContainer" id="card-3">
    <span class="bookAuthor">Orphaned Author</span>
  </div>
  <div class="bookContainer">
    <h2 class="bookTitle">Anonymous Card</h2>
  </div>
</body></html>`

func TestScanReaderExtractsCandidates(t *testing.T) {
	scanner := NewHTMLScanner("div.bookContainer")
	candidates, err := scanner.ScanReader(context.Background(), strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("ScanReader failed: %v", err)
	}
	if len(candidates) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(candidates))
	}

	first := candidates[0]
	if first.Card.ID() != "card-1" {
		t.Fatalf("first card ID = %q, want card-1", first.Card.ID())
	}
	if first.Query.Title != "The Dispossessed" || first.Query.Author != "Ursula K. Le Guin" {
		t.Fatalf("unexpected first query: %+v", first.Query)
	}
	if first.Malformed {
		t.Fatal("complete card flagged malformed")
	}

	second := candidates[1]
	if second.Query.Author != "" || second.Malformed {
		t.Fatalf("author-less card should be valid: %+v", second)
	}

	third := candidates[2]
	if !third.Malformed {
		t.Fatal("title-less card must be flagged malformed")
	}
}

func TestScanReaderGeneratesIDsForAnonymousCards(t *testing.T) {
	scanner := NewHTMLScanner("div.bookContainer")
	candidates, err := scanner.ScanReader(context.Background(), strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("ScanReader failed: %v", err)
	}

	anon := candidates[3]
	if anon.Card.ID() == "" {
		t.Fatal("anonymous card got empty ID")
	}
	if !strings.HasPrefix(anon.Card.ID(), "card-") {
		t.Fatalf("generated ID %q missing prefix", anon.Card.ID())
	}

	// A second scan of the same document yields a different identity for the
	// anonymous card: re-created elements are new cards.
	again, err := scanner.ScanReader(context.Background(), strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("second ScanReader failed: %v", err)
	}
	if again[3].Card.ID() == anon.Card.ID() {
		t.Fatal("anonymous card identity should not be stable across scans")
	}
}

func TestScanReaderEmptyDocument(t *testing.T) {
	scanner := NewHTMLScanner("")
	candidates, err := scanner.ScanReader(context.Background(), strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("ScanReader failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}
