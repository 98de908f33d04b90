// Package llm is the model-prompting collaborator: it takes a document's
// validated canonical text plus a task-specific instruction and returns
// HTML whose citation markers carry the literal cited substring as a
// data-quote attribute. The rest of the system treats it as a black box.
package llm

import (
	"context"
	"errors"
)

// ErrModelCall wraps any upstream prompting failure. Surfaced as an
// inline chat error for the specific operation, never a crash.
var ErrModelCall = errors.New("ModelCallFailure")

// Client produces citation-annotated HTML for the four analysis tasks.
type Client interface {
	// GenerateSummary summarizes a legal document into semantic HTML.
	GenerateSummary(ctx context.Context, text, name string) (string, error)

	// AnalyzeRisks identifies risks, obligations, and critical clauses.
	AnalyzeRisks(ctx context.Context, text string) (string, error)

	// AnswerQuestion answers a question based only on the document.
	AnswerQuestion(ctx context.Context, text, question string) (string, error)

	// DefineTerm defines a legal term in the document's context.
	DefineTerm(ctx context.Context, text, term string) (string, error)
}
