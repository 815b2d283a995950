package render

import (
	"log/slog"
	"sync"

	"nextread/internal/books"
	"nextread/internal/cards"
	"nextread/internal/logging"
)

// Renderer writes augmentation results back to the host surface. The
// pipeline only ever touches two host-visible markers (loading, processed);
// everything else the renderer does is presentation.
type Renderer interface {
	// ShowLoading displays the loading indicator for a card.
	ShowLoading(h cards.Handle)
	// ClearLoading removes the loading indicator.
	ClearLoading(h cards.Handle)
	// ShowMetadata displays a fetched record on a card. An empty record
	// means the source had nothing; implementations may render a "no data"
	// hint or nothing at all.
	ShowMetadata(h cards.Handle, q books.Query, md books.Metadata)
}

// Nop discards all rendering.
type Nop struct{}

func (Nop) ShowLoading(cards.Handle)                             {}
func (Nop) ClearLoading(cards.Handle)                            {}
func (Nop) ShowMetadata(cards.Handle, books.Query, books.Metadata) {}

// LogRenderer reports results through the logger; used by watch mode where
// there is no UI surface to draw on.
type LogRenderer struct {
	logger *slog.Logger
}

// NewLogRenderer builds a renderer that logs each result.
func NewLogRenderer(logger *slog.Logger) *LogRenderer {
	return &LogRenderer{logger: logging.NewComponentLogger(logger, "render")}
}

func (r *LogRenderer) ShowLoading(h cards.Handle)  {}
func (r *LogRenderer) ClearLoading(h cards.Handle) {}

func (r *LogRenderer) ShowMetadata(h cards.Handle, q books.Query, md books.Metadata) {
	if md.IsEmpty() {
		r.logger.Info("no metadata found",
			logging.String(logging.FieldCardID, h.ID()),
			logging.String("title", q.Title))
		return
	}
	r.logger.Info("card augmented",
		logging.String(logging.FieldCardID, h.ID()),
		logging.String("title", q.Title),
		logging.String("rating", md.Rating),
		logging.String("ratings", md.RatingCount),
		logging.String("year", md.Year))
}

// Result is one augmented card captured by a Recorder.
type Result struct {
	CardID   string
	Query    books.Query
	Metadata books.Metadata
}

// Recorder collects results for presentation after a run; the CLI renders
// them as a summary table. Safe for concurrent use by scheduler tasks.
type Recorder struct {
	mu      sync.Mutex
	results []Result
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ShowLoading(cards.Handle)  {}
func (r *Recorder) ClearLoading(cards.Handle) {}

func (r *Recorder) ShowMetadata(h cards.Handle, q books.Query, md books.Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, Result{CardID: h.ID(), Query: q, Metadata: md})
}

// Results returns a copy of everything recorded so far.
func (r *Recorder) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]Result, len(r.results))
	copy(cp, r.results)
	return cp
}
