package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/config"
	"github.com/sobiswriter/LegalLM/internal/extract"
	"github.com/sobiswriter/LegalLM/internal/highlight"
	"github.com/sobiswriter/LegalLM/internal/llm"
	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/session"
	"github.com/sobiswriter/LegalLM/internal/storage"
	"github.com/sobiswriter/LegalLM/resources"
	"github.com/sobiswriter/LegalLM/tools"
)

func CreateServer(cfg *config.Config, log logger.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "legallm", Version: "v0.1.0"}, nil)

	store, err := storage.NewSQLiteStore()
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}

	pipelineOpts := []extract.Option{}
	if cfg.OCRBaseURL != "" {
		pipelineOpts = append(pipelineOpts, extract.WithRecognizer(extract.NewHTTPRecognizer(cfg.OCRBaseURL)))
	}
	pipeline := extract.New(extract.Config{MaxPDFPages: cfg.MaxPDFPages}, log, pipelineOpts...)

	model := llm.NewOpenAIClient(cfg.OpenAIAPIKey, log)
	ctrl := session.NewController(store, pipeline, model, log)
	engine := highlight.NewEngine(log, 0)

	documentResourceHandler := resources.NewDocumentResourceHandler(store)

	// Register tools with controller and logger dependencies
	mcp.AddTool(server, tools.DocumentUploadTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.DocumentUploadQuery) (*mcp.CallToolResult, *tools.DocumentUploadResponse, error) {
		return tools.DocumentUploadToolHandler(ctx, req, query, ctrl, log)
	})

	mcp.AddTool(server, tools.DocumentListTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.DocumentListQuery) (*mcp.CallToolResult, *tools.DocumentListResponse, error) {
		return tools.DocumentListToolHandler(ctx, req, query, store)
	})

	mcp.AddTool(server, tools.DocumentSummarizeTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.DocumentSummarizeQuery) (*mcp.CallToolResult, *tools.DocumentSummarizeResponse, error) {
		return tools.DocumentSummarizeToolHandler(ctx, req, query, ctrl)
	})

	mcp.AddTool(server, tools.DocumentRisksTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.DocumentRisksQuery) (*mcp.CallToolResult, *tools.DocumentRisksResponse, error) {
		return tools.DocumentRisksToolHandler(ctx, req, query, ctrl)
	})

	mcp.AddTool(server, tools.DocumentQuestionTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.DocumentQuestionQuery) (*mcp.CallToolResult, *tools.DocumentQuestionResponse, error) {
		return tools.DocumentQuestionToolHandler(ctx, req, query, ctrl)
	})

	mcp.AddTool(server, tools.DefineTermTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.DefineTermQuery) (*mcp.CallToolResult, *tools.DefineTermResponse, error) {
		return tools.DefineTermToolHandler(ctx, req, query, ctrl)
	})

	mcp.AddTool(server, tools.LocateQuoteTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.LocateQuoteQuery) (*mcp.CallToolResult, *tools.LocateQuoteResponse, error) {
		return tools.LocateQuoteToolHandler(ctx, req, query, store, engine)
	})

	// Template for document summary
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "document://{documentId}",
		Name:        "document",
		Description: "Workspace document with name, format, and text length",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return documentResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for canonical text
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "document://{documentId}/text",
		Name:        "document-text",
		Description: "Canonical extracted text of the document",
		MIMEType:    "text/plain",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return documentResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for display rendering
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "document://{documentId}/html",
		Name:        "document-html",
		Description: "Display rendering of the document, when one exists",
		MIMEType:    "text/html",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return documentResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for conversation thread
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "document://{documentId}/messages",
		Name:        "document-messages",
		Description: "Conversation thread for the document",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return documentResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	return server
}
