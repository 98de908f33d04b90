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

type DocumentQuestionQuery struct {
	DocumentID int64  `json:"document_id"`
	Question   string `json:"question"`
}

type DocumentQuestionResponse struct {
	DocumentID int64             `json:"document_id"`
	Answer     string            `json:"answer"`
	Citations  []models.Citation `json:"citations,omitempty"`
}

func DocumentQuestionTool() *mcp.Tool {
	inputschema, err := jsonschema.For[DocumentQuestionQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "document-question",
		Description: "Answer a question about a workspace document, grounded in its text. The answer is HTML with numbered citation markers carrying exact source quotes.",
		InputSchema: inputschema,
	}
}

func DocumentQuestionToolHandler(ctx context.Context, req *mcp.CallToolRequest, query DocumentQuestionQuery, ctrl *session.Controller) (*mcp.CallToolResult, *DocumentQuestionResponse, error) {
	if strings.TrimSpace(query.Question) == "" {
		return nil, nil, errors.New("question is required")
	}

	msg, err := ctrl.Ask(ctx, query.DocumentID, query.Question)
	if err != nil {
		return nil, nil, err
	}
	if msg == nil {
		return nil, nil, errors.New("operation superseded by a selection change")
	}

	responseData := &DocumentQuestionResponse{
		DocumentID: query.DocumentID,
		Answer:     msg.Content,
		Citations:  citations.Parse(msg.Content),
	}
	return nil, responseData, nil
}
