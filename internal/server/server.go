// Package server exposes the upload and chat endpoints over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"pdf-rag-chat/internal/config"
	"pdf-rag-chat/internal/models"
)

// Pipeline is the ingestion + chat surface the handlers call
type Pipeline interface {
	Ingest(ctx context.Context, filename string, data []byte) (int, error)
	Answer(ctx context.Context, query string, history models.History) (<-chan string, error)
}

// Counter reports how many chunks the index holds
type Counter interface {
	Count() int
}

type Server struct {
	pipeline Pipeline
	index    Counter
	config   *config.ServerConfig
	logger   zerolog.Logger
	server   *http.Server
}

func NewServer(pipeline Pipeline, index Counter, cfg *config.ServerConfig, logger zerolog.Logger) *Server {
	return &Server{
		pipeline: pipeline,
		index:    index,
		config:   cfg,
		logger:   logger,
	}
}

// Router builds the chi router. No request timeout is set because chat
// responses stream for as long as the model keeps producing.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS())

	r.Get("/health", s.handleHealth)
	r.Post("/upload-file", s.handleUpload)
	r.Post("/api/chat", s.handleChat)

	return r
}

// Start serves until the server is stopped
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Router(),
	}
	s.logger.Info().Str("addr", s.config.Addr).Msg("Starting server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
