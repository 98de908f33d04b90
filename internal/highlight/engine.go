package highlight

import (
	"encoding/base64"
	"sync"
	"time"

	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/models"
)

// DefaultTTL is how long a highlight stays visible before it is removed.
const DefaultTTL = 3 * time.Second

// ActionKind describes what the viewer should do with a citation click.
type ActionKind string

const (
	// ActionNone: quote not found; silent no-op.
	ActionNone ActionKind = "none"
	// ActionScrollTop: no quote to locate; scroll the viewer to the top.
	ActionScrollTop ActionKind = "scroll-top"
	// ActionOpenSource: PDF rendering; in-place highlighting is
	// unsupported, offer opening the source file instead.
	ActionOpenSource ActionKind = "open-source"
	// ActionHighlight: quote located; apply the transient highlight.
	ActionHighlight ActionKind = "highlight"
)

// Action is the outcome of a quote-location request.
type Action struct {
	Kind       ActionKind `json:"kind"`
	Match      *Match     `json:"match,omitempty"`
	HTML       string     `json:"html,omitempty"`        // rendering with the mark applied
	ScrollNode int        `json:"scroll_node,omitempty"` // node to center in the viewport
	ExpiresMS  int        `json:"expires_ms,omitempty"`
}

// Engine applies quote-location requests against the currently displayed
// document rendering. At most one highlight is active at a time: a new
// request tears down the previous one before starting, and the expiry
// timer is safe to fire after its highlight was already superseded.
type Engine struct {
	mu     sync.Mutex
	log    logger.Logger
	ttl    time.Duration
	gen    uint64
	active *activeHighlight
}

type activeHighlight struct {
	docID int64
	match *Match
	gen   uint64
	timer *time.Timer
}

// NewEngine creates an Engine. A non-positive ttl uses DefaultTTL.
func NewEngine(log logger.Logger, ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Engine{log: log, ttl: ttl}
}

// Request locates quote inside the document's rendering and returns the
// action the viewer should take. Empty quotes and PDFs degrade instead of
// failing; a missing match is a silent no-op.
func (e *Engine) Request(doc *models.Document, quote string) Action {
	if quote == "" {
		return Action{Kind: ActionScrollTop}
	}
	if doc.Format == models.FormatPDF {
		// No reliable text-layer correlation to the embedded viewer.
		return Action{Kind: ActionOpenSource}
	}

	segments, isHTML := renderSegments(doc)
	m := Locate(segments, quote)
	if m == nil {
		e.log.Debug("no match for quote in document %d", doc.ID)
		return Action{Kind: ActionNone}
	}

	var annotated string
	if isHTML {
		annotated = AnnotateHTML(doc.RenderedHTML, m)
	} else {
		annotated = AnnotateText(segments, m)
	}

	e.apply(doc.ID, m)

	return Action{
		Kind:       ActionHighlight,
		Match:      m,
		HTML:       annotated,
		ScrollNode: m.StartNode,
		ExpiresMS:  int(e.ttl / time.Millisecond),
	}
}

// Active reports the currently highlighted document and match, if any.
func (e *Engine) Active() (int64, *Match, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return 0, nil, false
	}
	return e.active.docID, e.active.match, true
}

// apply replaces any still-active highlight and schedules removal.
func (e *Engine) apply(docID int64, m *Match) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil && e.active.timer != nil {
		e.active.timer.Stop()
	}

	e.gen++
	gen := e.gen
	e.active = &activeHighlight{
		docID: docID,
		match: m,
		gen:   gen,
		timer: time.AfterFunc(e.ttl, func() { e.expire(gen) }),
	}
}

// expire removes the highlight when its timer fires. No-op when it was
// already superseded by a newer request.
func (e *Engine) expire(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil || e.active.gen != gen {
		return
	}
	e.active = nil
}

// renderSegments produces the linear text view of the document rendering:
// the DOCX display HTML when present, the decoded original text otherwise.
func renderSegments(doc *models.Document) ([]Segment, bool) {
	if doc.Format == models.FormatDocx && doc.RenderedHTML != "" {
		return SegmentsFromHTML(doc.RenderedHTML), true
	}
	text := doc.CanonicalText
	if raw, err := base64.StdEncoding.DecodeString(doc.Content); err == nil && len(raw) > 0 {
		text = string(raw)
	}
	return SegmentsFromText(text), false
}
