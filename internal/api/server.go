package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sentiserve/internal/models"
)

// Analyzer is what the handlers need from the sentiment service.
type Analyzer interface {
	ModelName() string
	AnalyzeText(ctx context.Context, text string, language *string) (models.SentimentResult, error)
	AnalyzeBatch(ctx context.Context, texts []string, language *string) ([]models.SentimentResult, error)
}

type Server struct {
	echo     *echo.Echo
	analyzer Analyzer
}

func NewServer(analyzer Analyzer) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:     e,
		analyzer: analyzer,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)
	s.echo.POST("/sentiment", s.analyzeSentiment)
	s.echo.POST("/sentiment/batch", s.analyzeBatch)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status: "ok",
		Model:  s.analyzer.ModelName(),
	})
}

func (s *Server) analyzeSentiment(c echo.Context) error {
	var req models.SentimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}

	result, err := s.analyzer.AnalyzeText(c.Request().Context(), req.Text, req.Language)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) analyzeBatch(c echo.Context) error {
	var req models.BatchSentimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	if len(req.Texts) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "texts must not be empty"})
	}

	results, err := s.analyzer.AnalyzeBatch(c.Request().Context(), req.Texts, req.Language)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, results)
}
