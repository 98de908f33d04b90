package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/citations"
	"github.com/sobiswriter/LegalLM/internal/session"
	"github.com/sobiswriter/LegalLM/models"
)

type DefineTermQuery struct {
	DocumentID int64  `json:"document_id"`
	Term       string `json:"term"`
}

type DefineTermResponse struct {
	DocumentID int64             `json:"document_id"`
	Term       string            `json:"term"`
	Definition string            `json:"definition"`
	Citations  []models.Citation `json:"citations,omitempty"`
}

func DefineTermTool() *mcp.Tool {
	inputschema, err := jsonschema.For[DefineTermQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "define-term",
		Description: "Explain a legal term in plain language, in the context of a workspace document. The definition is HTML with numbered citation markers where the document uses the term.",
		InputSchema: inputschema,
	}
}

func DefineTermToolHandler(ctx context.Context, req *mcp.CallToolRequest, query DefineTermQuery, ctrl *session.Controller) (*mcp.CallToolResult, *DefineTermResponse, error) {
	if strings.TrimSpace(query.Term) == "" {
		return nil, nil, errors.New("term is required")
	}

	msg, err := ctrl.Define(ctx, query.DocumentID, query.Term)
	if err != nil {
		return nil, nil, err
	}
	if msg == nil {
		return nil, nil, errors.New("operation superseded by a selection change")
	}

	responseData := &DefineTermResponse{
		DocumentID: query.DocumentID,
		Term:       query.Term,
		Definition: msg.Content,
		Citations:  citations.Parse(msg.Content),
	}
	return nil, responseData, nil
}
