// interfaces.go - Handler interfaces for the HTTP surface
package api

import "github.com/labstack/echo/v4"

// HealthHandler serves liveness checks
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// ExtractHandler serves the standalone text extraction endpoint
type ExtractHandler interface {
	HandleExtractText(c echo.Context) error
}

// DocumentHandler serves workspace document operations
type DocumentHandler interface {
	HandleUpload(c echo.Context) error
	HandleList(c echo.Context) error
	HandleGet(c echo.Context) error
	HandleSelect(c echo.Context) error
	HandleDelete(c echo.Context) error
}

// AnalysisHandler serves the model-backed analysis operations
type AnalysisHandler interface {
	HandleSummary(c echo.Context) error
	HandleRisks(c echo.Context) error
	HandleQuestion(c echo.Context) error
	HandleDefine(c echo.Context) error
	HandleMessages(c echo.Context) error
	HandleClearMessages(c echo.Context) error
}

// HighlightHandler serves quote-location requests
type HighlightHandler interface {
	HandleLocate(c echo.Context) error
}
