package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/storage"
)

// DocumentResourceHandler handles resource requests for workspace documents
type DocumentResourceHandler struct {
	store storage.Store
}

// NewDocumentResourceHandler creates a new document resource handler
func NewDocumentResourceHandler(store storage.Store) *DocumentResourceHandler {
	return &DocumentResourceHandler{store: store}
}

// ListResources returns a list of available resources
func (h *DocumentResourceHandler) ListResources(ctx context.Context) ([]mcp.Resource, error) {
	docs, err := h.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var resources []mcp.Resource
	for _, doc := range docs {
		resources = append(resources, mcp.Resource{
			URI:         fmt.Sprintf("document://%d", doc.ID),
			Name:        fmt.Sprintf("%s (Document)", doc.Name),
			Description: fmt.Sprintf("Workspace document: %s", doc.Name),
			MIMEType:    "application/json",
		})

		resources = append(resources, mcp.Resource{
			URI:         fmt.Sprintf("document://%d/text", doc.ID),
			Name:        fmt.Sprintf("%s (Text)", doc.Name),
			Description: "Canonical extracted text",
			MIMEType:    "text/plain",
		})

		resources = append(resources, mcp.Resource{
			URI:         fmt.Sprintf("document://%d/messages", doc.ID),
			Name:        fmt.Sprintf("%s (Conversation)", doc.Name),
			Description: "Conversation thread for this document",
			MIMEType:    "application/json",
		})
	}

	return resources, nil
}

// ReadResource reads a specific resource by URI
func (h *DocumentResourceHandler) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	// Parse URI: document://doc_id/resource_type
	if !strings.HasPrefix(uri, "document://") {
		return nil, fmt.Errorf("invalid URI scheme, expected document://")
	}

	path := strings.TrimPrefix(uri, "document://")
	parts := strings.Split(path, "/")

	if len(parts) == 0 || parts[0] == "" {
		return nil, fmt.Errorf("invalid URI, missing document ID")
	}

	docID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid document ID: %s", parts[0])
	}

	resourceType := ""
	if len(parts) > 1 {
		resourceType = parts[1]
	}

	var content, mimeType string
	switch resourceType {
	case "":
		content, err = h.getDocument(ctx, docID)
		mimeType = "application/json"
	case "text":
		content, err = h.getText(ctx, docID)
		mimeType = "text/plain"
	case "html":
		content, err = h.getHTML(ctx, docID)
		mimeType = "text/html"
	case "messages":
		content, err = h.getMessages(ctx, docID)
		mimeType = "application/json"
	default:
		return nil, fmt.Errorf("unknown resource type: %s", resourceType)
	}

	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: mimeType,
				Text:     content,
			},
		},
	}, nil
}

func (h *DocumentResourceHandler) getDocument(ctx context.Context, docID int64) (string, error) {
	doc, err := h.store.GetDocument(ctx, docID)
	if err != nil {
		return "", err
	}

	summary := map[string]any{
		"id":     doc.ID,
		"name":   doc.Name,
		"format": doc.Format,
		"length": len(doc.CanonicalText),
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (h *DocumentResourceHandler) getText(ctx context.Context, docID int64) (string, error) {
	doc, err := h.store.GetDocument(ctx, docID)
	if err != nil {
		return "", err
	}
	return doc.CanonicalText, nil
}

func (h *DocumentResourceHandler) getHTML(ctx context.Context, docID int64) (string, error) {
	doc, err := h.store.GetDocument(ctx, docID)
	if err != nil {
		return "", err
	}
	return doc.RenderedHTML, nil
}

func (h *DocumentResourceHandler) getMessages(ctx context.Context, docID int64) (string, error) {
	msgs, err := h.store.GetMessages(ctx, docID)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
