// Package server exposes the invoice codec over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sa-hr/eracun/internal/extract"
	"github.com/sa-hr/eracun/internal/model"
	"github.com/sa-hr/eracun/internal/ubl"
	"github.com/sa-hr/eracun/internal/validate"
	"github.com/sa-hr/eracun/pkg/eracun"
)

// Config holds server configuration
type Config struct {
	Address      string
	APIKey       string
	LLMBaseURL   string
	LLMModel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	extractor *extract.Extractor
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	// Text extraction is optional; without an API key the endpoint reports 503.
	var extractor *extract.Extractor
	if config.APIKey != "" {
		var clientOpts []extract.ClientOption
		if config.LLMBaseURL != "" {
			clientOpts = append(clientOpts, extract.WithBaseURL(config.LLMBaseURL))
		}
		client := extract.NewClient(config.APIKey, clientOpts...)

		var extractorOpts []extract.ExtractorOption
		if config.LLMModel != "" {
			extractorOpts = append(extractorOpts, extract.WithModel(config.LLMModel))
		}
		extractor = extract.NewExtractor(client, extractorOpts...)
	}

	s := &Server{
		config:    config,
		router:    router,
		extractor: extractor,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/parse", s.handleParse)
		v1.POST("/roundtrip", s.handleRoundTrip)
		v1.POST("/extract", s.handleExtract)
		v1.GET("/info", s.handleInfo)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// rawBody reads the request body as the raw invoice tree. Numbers stay
// json.Number so amounts keep their textual scale.
func rawBody(c *gin.Context) (map[string]any, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}

	raw, err := extract.DecodeRaw(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body is not a JSON object"})
		return nil, false
	}
	return raw, true
}

func xmlBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) handleValidate(c *gin.Context) {
	raw, ok := rawBody(c)
	if !ok {
		return
	}

	result, errs := validate.Invoice(raw)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidateResponse{
			Valid:  false,
			Errors: flattenMessages(errs),
		})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{
		Valid:    true,
		Invoice:  result.Invoice,
		Warnings: result.Warnings,
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	raw, ok := rawBody(c)
	if !ok {
		return
	}

	result, errs := validate.Invoice(raw)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Errors: flattenMessages(errs),
		})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", ubl.Generate(result.Invoice))
}

func (s *Server) handleParse(c *gin.Context) {
	body, ok := xmlBody(c)
	if !ok {
		return
	}

	parsed, perr := ubl.Parse(body)
	if perr != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: perr.Message,
			Kind:  string(perr.Kind),
			Path:  perr.Path,
		})
		return
	}

	c.JSON(http.StatusOK, ParseResponse{Invoice: parsed})
}

func (s *Server) handleRoundTrip(c *gin.Context) {
	raw, ok := rawBody(c)
	if !ok {
		return
	}

	result, err := eracun.RoundTrip(raw)
	if err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:  "validation failed",
				Errors: flattenMessages(fieldErrs),
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, RoundTripResponse{
		XML:      string(result.XML),
		Invoice:  result.Parsed,
		Warnings: result.Warnings,
	})
}

func (s *Server) handleExtract(c *gin.Context) {
	if s.extractor == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "text extraction unavailable: no API key configured",
		})
		return
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	raw, err := s.extractor.ExtractFromText(ctx, string(body))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{Raw: raw})
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, eracun.Info())
}

func flattenMessages(errs model.FieldErrors) map[string]string {
	flat := errs.Flatten()
	out := make(map[string]string, len(flat))
	for path, reason := range flat {
		out[path] = string(reason)
	}
	return out
}
