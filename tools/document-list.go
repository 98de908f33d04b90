package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/storage"
	"github.com/sobiswriter/LegalLM/models"
)

type DocumentListQuery struct{}

type DocumentListResponse struct {
	Documents []models.DocumentInfo `json:"documents"`
}

func DocumentListTool() *mcp.Tool {
	inputschema, err := jsonschema.For[DocumentListQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "document-list",
		Description: "List the documents currently in the workspace, in upload order.",
		InputSchema: inputschema,
	}
}

func DocumentListToolHandler(ctx context.Context, req *mcp.CallToolRequest, query DocumentListQuery, store storage.Store) (*mcp.CallToolResult, *DocumentListResponse, error) {
	infos, err := store.ListDocuments(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nil, &DocumentListResponse{Documents: infos}, nil
}
