// Package api exposes navigation detection over HTTP.
package api

import (
	"io"
	"net/http"

	"github.com/gaurav-prasanna/navpipe/core/detect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// DefaultMaxBodyBytes bounds the size of a detect request body.
const DefaultMaxBodyBytes int64 = 10 << 20

// Server is the HTTP API server for navpipe.
type Server struct {
	router       chi.Router
	detector     *detect.Detector
	opts         []detect.Option
	maxBodyBytes int64
	log          *logrus.Logger
}

// NewServer creates and configures the HTTP server. opts configure the shared
// detector; requests carrying their own selector get a detector built from
// the same options plus that override.
func NewServer(log *logrus.Logger, maxBodyBytes int64, opts ...detect.Option) *Server {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	opts = append([]detect.Option{detect.WithLogger(log)}, opts...)
	s := &Server{
		detector:     detect.New(opts...),
		opts:         opts,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/api/detect", s.handleDetect)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
