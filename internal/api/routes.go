// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/sobiswriter/LegalLM/internal/extract"
	"github.com/sobiswriter/LegalLM/internal/highlight"
	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/session"
	"github.com/sobiswriter/LegalLM/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store      storage.Store
	Pipeline   *extract.Pipeline
	Controller *session.Controller
	Engine     *highlight.Engine
	Log        logger.Logger
	Version    string
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Extract   ExtractHandler
	Document  DocumentHandler
	Analysis  AnalysisHandler
	Highlight HighlightHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version),
		Extract:   NewExtractHandler(deps.Pipeline, deps.Log),
		Document:  NewDocumentHandler(deps.Controller, deps.Store, deps.Log),
		Analysis:  NewAnalysisHandler(deps.Controller, deps.Log),
		Highlight: NewHighlightHandler(deps.Store, deps.Engine, deps.Log),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)

	// Standalone extraction
	e.POST("/api/extract-text", handlers.Extract.HandleExtractText)

	// Workspace documents
	docs := e.Group("/api/documents")
	docs.POST("", handlers.Document.HandleUpload)
	docs.GET("", handlers.Document.HandleList)
	docs.GET("/:id", handlers.Document.HandleGet)
	docs.POST("/:id/select", handlers.Document.HandleSelect)
	docs.DELETE("/:id", handlers.Document.HandleDelete)

	// Analysis operations
	docs.POST("/:id/summary", handlers.Analysis.HandleSummary)
	docs.POST("/:id/risks", handlers.Analysis.HandleRisks)
	docs.POST("/:id/question", handlers.Analysis.HandleQuestion)
	docs.POST("/:id/define", handlers.Analysis.HandleDefine)
	docs.GET("/:id/messages", handlers.Analysis.HandleMessages)
	docs.DELETE("/:id/messages", handlers.Analysis.HandleClearMessages)

	// Quote location
	docs.POST("/:id/locate", handlers.Highlight.HandleLocate)
}
