package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/citations"
	"github.com/sobiswriter/LegalLM/internal/highlight"
	"github.com/sobiswriter/LegalLM/internal/storage"
)

type LocateQuoteQuery struct {
	DocumentID int64  `json:"document_id"`
	Quote      string `json:"quote,omitempty"`
	// Alternatively, name a citation marker in a conversation message
	// and the quote is read from its data-quote attribute.
	MessageID string `json:"message_id,omitempty"`
	Marker    int    `json:"marker,omitempty"`
}

type LocateQuoteResponse struct {
	DocumentID int64            `json:"document_id"`
	Action     highlight.Action `json:"action"`
}

func LocateQuoteTool() *mcp.Tool {
	inputschema, err := jsonschema.For[LocateQuoteQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "locate-quote",
		Description: "Locate a citation quote inside a workspace document's rendering. The quote may be given verbatim or resolved from a numbered citation marker in a conversation message. Matching ignores case and whitespace differences. Returns the viewer action: a highlight with node offsets, scroll-to-top for an empty quote, open-source for PDFs, or none when the quote is absent.",
		InputSchema: inputschema,
	}
}

func LocateQuoteToolHandler(ctx context.Context, req *mcp.CallToolRequest, query LocateQuoteQuery, store storage.Store, engine *highlight.Engine) (*mcp.CallToolResult, *LocateQuoteResponse, error) {
	doc, err := store.GetDocument(ctx, query.DocumentID)
	if err != nil {
		return nil, nil, err
	}

	quote := query.Quote
	if quote == "" && query.Marker > 0 && query.MessageID != "" {
		msgs, err := store.GetMessages(ctx, query.DocumentID)
		if err != nil {
			return nil, nil, err
		}
		for _, msg := range msgs {
			if msg.ID == query.MessageID {
				quote = citations.QuoteForMarker(msg.Content, query.Marker)
				break
			}
		}
	}

	action := engine.Request(doc, quote)
	responseData := &LocateQuoteResponse{
		DocumentID: query.DocumentID,
		Action:     action,
	}
	return nil, responseData, nil
}
