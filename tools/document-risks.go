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

type DocumentRisksQuery struct {
	DocumentID int64 `json:"document_id"`
}

type DocumentRisksResponse struct {
	DocumentID int64             `json:"document_id"`
	Analysis   string            `json:"analysis"`
	Citations  []models.Citation `json:"citations,omitempty"`
}

func DocumentRisksTool() *mcp.Tool {
	inputschema, err := jsonschema.For[DocumentRisksQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "document-risks",
		Description: "Analyze a workspace document for key clauses, risks, and obligations. The analysis is HTML with numbered citation markers carrying exact source quotes.",
		InputSchema: inputschema,
	}
}

func DocumentRisksToolHandler(ctx context.Context, req *mcp.CallToolRequest, query DocumentRisksQuery, ctrl *session.Controller) (*mcp.CallToolResult, *DocumentRisksResponse, error) {
	msg, err := ctrl.AnalyzeRisks(ctx, query.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	if msg == nil {
		return nil, nil, errors.New("operation superseded by a selection change")
	}

	responseData := &DocumentRisksResponse{
		DocumentID: query.DocumentID,
		Analysis:   msg.Content,
		Citations:  citations.Parse(msg.Content),
	}
	return nil, responseData, nil
}
