package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/semsnip/config"
)

// Server is the HTTP API surface: snippet rendering, linting, rule
// introspection, health and metrics.
type Server struct {
	echo      *echo.Echo
	cfg       *config.Config
	engine    *Engine
	fetcher   *Fetcher
	metrics   *metrics
	converter *md.Converter
	logger    *slog.Logger
}

// NewServer builds the server around an engine.
func NewServer(cfg *config.Config, engine *Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		cfg:       cfg,
		engine:    engine,
		fetcher:   NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, cfg.Fetch.MaxBodySize),
		metrics:   newMetrics(),
		converter: md.NewConverter("", true, nil),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.requestLogger)
}

// requestLogger reports each request through slog with its assigned ID.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.logger.Info("Request handled",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", c.Response().Status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
		return err
	}
}

func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := s.echo.Group("/api/v1")
	api.POST("/snippet", s.handleSnippet)
	api.POST("/lint", s.handleLint)
	api.GET("/rules", s.handleRules)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleSnippet renders a snippet for an inline document or a fetched URL.
// An Accept header of text/markdown converts the fragment to markdown.
func (s *Server) handleSnippet(c echo.Context) error {
	req, err := s.bindRenderRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, base, err := s.resolveDocument(c, req)
	if err != nil {
		s.metrics.fetches.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	start := time.Now()
	resp, err := s.engine.Render(data, req.Format, base)
	s.metrics.renderSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.renders.WithLabelValues(formatLabel(req.Format), "error").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	s.metrics.renders.WithLabelValues(formatLabel(req.Format), outcomeLabel(resp)).Inc()
	for _, key := range resp.Matched {
		s.metrics.ruleMatches.WithLabelValues(key).Inc()
	}

	resp.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)

	if wantsMarkdown(c.Request().Header.Get("Accept")) {
		markdown, err := s.converter.ConvertString(resp.HTML)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("markdown conversion: %v", err))
		}
		return c.String(http.StatusOK, markdown)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLint(c echo.Context) error {
	req, err := s.bindRenderRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, base, err := s.resolveDocument(c, req)
	if err != nil {
		s.metrics.fetches.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	messages, err := s.engine.Lint(data, req.Format, base)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"messages": messages})
}

// handleRules reports the active registry's match keys in resolution order.
func (s *Server) handleRules(c echo.Context) error {
	reg := s.engine.Registry()
	return c.JSON(http.StatusOK, map[string]any{"keys": reg.Keys()})
}

// bindRenderRequest accepts either a JSON envelope or a raw markup body.
func (s *Server) bindRenderRequest(c echo.Context) (*RenderRequest, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		var req RenderRequest
		if err := c.Bind(&req); err != nil {
			return nil, fmt.Errorf("invalid request body: %w", err)
		}
		if req.Document == "" && req.URL == "" {
			return nil, fmt.Errorf("one of document or url is required")
		}
		return &req, nil
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.cfg.Fetch.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return &RenderRequest{
		Document: string(body),
		Format:   c.QueryParam("format"),
		Base:     c.QueryParam("base"),
	}, nil
}

// resolveDocument returns the markup bytes and the base IRI, fetching the
// URL when no inline document was given.
func (s *Server) resolveDocument(c echo.Context, req *RenderRequest) ([]byte, string, error) {
	base := req.Base
	if base == "" {
		base = req.URL
	}
	if req.Document != "" {
		return []byte(req.Document), base, nil
	}

	data, err := s.fetcher.Fetch(c.Request().Context(), req.URL)
	if err != nil {
		return nil, "", err
	}
	s.metrics.fetches.WithLabelValues("ok").Inc()
	return data, base, nil
}

func formatLabel(format string) string {
	if format == "" {
		return "auto"
	}
	return format
}

func outcomeLabel(resp RenderResponse) string {
	switch {
	case resp.Fallback:
		return "fallback"
	case resp.HTML == "":
		return "empty"
	default:
		return "ok"
	}
}

func wantsMarkdown(accept string) bool {
	return strings.Contains(accept, "text/markdown")
}

// Start begins serving on the configured address and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("HTTP server starting", slog.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ReloadRules rebuilds the engine's rule registry and records the reload.
// The rule watcher calls this on directory changes.
func (s *Server) ReloadRules() error {
	s.metrics.reloads.Inc()
	return s.engine.Reload()
}
