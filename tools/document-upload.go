package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/session"
)

type DocumentUploadQuery struct {
	Name    string `json:"name"`
	RawData []byte `json:"raw_data"`
}

type DocumentUploadResponse struct {
	DocumentID int64  `json:"document_id"`
	Format     string `json:"format"`
	Text       string `json:"text"`
	Pages      int    `json:"pages,omitempty"`
}

func DocumentUploadTool() *mcp.Tool {
	inputschema, err := jsonschema.For[DocumentUploadQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "document-upload",
		Description: "Upload a legal document (PDF, DOCX, or plain text) into the workspace. The file format is detected automatically and its text is extracted, with OCR fallback for scanned PDF pages. The uploaded document becomes the active one and its conversation opens with a generated summary.",
		InputSchema: inputschema,
	}
}

func DocumentUploadToolHandler(ctx context.Context, req *mcp.CallToolRequest, query DocumentUploadQuery, ctrl *session.Controller, log logger.Logger) (*mcp.CallToolResult, *DocumentUploadResponse, error) {
	doc, err := ctrl.Upload(ctx, query.Name, query.RawData)
	if err != nil {
		return nil, nil, err
	}

	responseData := &DocumentUploadResponse{
		DocumentID: doc.ID,
		Format:     string(doc.Format),
		Text:       doc.CanonicalText,
	}
	return nil, responseData, nil
}
