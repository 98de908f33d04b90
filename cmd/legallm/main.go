package main

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sobiswriter/LegalLM/internal/api"
	"github.com/sobiswriter/LegalLM/internal/config"
	"github.com/sobiswriter/LegalLM/internal/extract"
	"github.com/sobiswriter/LegalLM/internal/highlight"
	"github.com/sobiswriter/LegalLM/internal/llm"
	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/session"
	"github.com/sobiswriter/LegalLM/internal/storage"
)

// Version info (set during build)
var Version = "dev"

func main() {
	cfg, err := config.Load(os.Getenv("LEGALLM_CONFIG"))
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(logger.LogConfig{
		Output: cfg.LogOutput,
		Level:  cfg.LogLevel,
	})
	if err != nil {
		panic(err)
	}

	log.Info("Starting legallm server on %s", cfg.ListenAddr)

	store, err := storage.NewSQLiteStore()
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	pipelineOpts := []extract.Option{}
	if cfg.OCRBaseURL != "" {
		pipelineOpts = append(pipelineOpts, extract.WithRecognizer(extract.NewHTTPRecognizer(cfg.OCRBaseURL)))
	}
	pipeline := extract.New(extract.Config{MaxPDFPages: cfg.MaxPDFPages}, log, pipelineOpts...)

	model := llm.NewOpenAIClient(cfg.OpenAIAPIKey, log)
	ctrl := session.NewController(store, pipeline, model, log)
	engine := highlight.NewEngine(log, 0)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64M"))
	e.Use(middleware.CORS())

	handlers := api.NewHandlers(&api.Dependencies{
		Store:      store,
		Pipeline:   pipeline,
		Controller: ctrl,
		Engine:     engine,
		Log:        log,
		Version:    Version,
	})
	api.RegisterRoutes(e, handlers)

	if err := e.Start(cfg.ListenAddr); err != nil {
		log.Fatal("Server failed: %v", err)
	}
}
