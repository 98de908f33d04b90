package tools

import (
	"context"
	"errors"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/citations"
	"github.com/sobiswriter/LegalLM/internal/session"
	"github.com/sobiswriter/LegalLM/models"
)

type DocumentSummarizeQuery struct {
	DocumentID int64 `json:"document_id"`
}

type DocumentSummarizeResponse struct {
	DocumentID int64             `json:"document_id"`
	Summary    string            `json:"summary"`
	Citations  []models.Citation `json:"citations,omitempty"`
}

func DocumentSummarizeTool() *mcp.Tool {
	inputschema, err := jsonschema.For[DocumentSummarizeQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "document-summarize",
		Description: "Summarize a workspace document using OpenAI's GPT-5 Mini. The summary is HTML with numbered citation markers; each marker carries the exact source quote from the document.",
		InputSchema: inputschema,
	}
}

func DocumentSummarizeToolHandler(ctx context.Context, req *mcp.CallToolRequest, query DocumentSummarizeQuery, ctrl *session.Controller) (*mcp.CallToolResult, *DocumentSummarizeResponse, error) {
	msg, err := ctrl.Summarize(ctx, query.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	if msg == nil {
		return nil, nil, errors.New("operation superseded by a selection change")
	}

	responseData := &DocumentSummarizeResponse{
		DocumentID: query.DocumentID,
		Summary:    msg.Content,
		Citations:  citations.Parse(msg.Content),
	}
	return nil, responseData, nil
}
