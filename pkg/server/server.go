// Package server exposes image lookups over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
	"github.com/samber/lo"
)

// Lookup is the subset of ami.Client the server needs.
type Lookup interface {
	Latest(ctx context.Context, q ami.Query) (ami.Record, error)
	List(ctx context.Context, q ami.Query) ([]ami.Record, error)
}

// Server serves lookup requests. Every request performs its own catalog fetch.
type Server struct {
	lookup Lookup
	logger *slog.Logger
}

// New creates a new server.
func New(lookup Lookup, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{lookup: lookup, logger: logger}
}

// ImageResponse is a record together with its extracted image ID.
type ImageResponse struct {
	ImageID string     `json:"image_id" yaml:"image_id"`
	Record  ami.Record `json:"record" yaml:"record"`
}

// ListResponse is the body of GET /v1/images.
type ListResponse struct {
	Images []ImageResponse `json:"images" yaml:"images"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Error("Unable to write healthcheck", "err", err)
		}
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/latest", s.handleLatest)
		r.Get("/images", s.handleList)
	})

	return r
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	q, ok := s.queryOrError(w, r)
	if !ok {
		return
	}

	rec, err := s.lookup.Latest(r.Context(), q)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	id, err := rec.ImageID()
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ImageResponse{ImageID: id, Record: rec})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q, ok := s.queryOrError(w, r)
	if !ok {
		return
	}

	records, err := s.lookup.List(r.Context(), q)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	images := lo.Map(records, func(rec ami.Record, _ int) ImageResponse {
		// a row with a broken link is still listed, just without an ID
		id, _ := rec.ImageID()
		return ImageResponse{ImageID: id, Record: rec}
	})

	s.writeJSON(w, http.StatusOK, ListResponse{Images: images})
}

// queryOrError parses the lookup criteria from the URL. region is required.
func (s *Server) queryOrError(w http.ResponseWriter, r *http.Request) (ami.Query, bool) {
	v := r.URL.Query()
	q := ami.Query{
		Region:        v.Get("region"),
		ReleaseName:   v.Get("release"),
		ReleaseNumber: v.Get("release_number"),
		InstanceType:  v.Get("instance_type"),
		Architecture:  v.Get("arch"),
	}
	if q.Region == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "region is required"})
		return ami.Query{}, false
	}
	return q, true
}

// statusFor maps a lookup error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ami.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ami.ErrNetwork),
		errors.Is(err, ami.ErrMalformedPayload),
		errors.Is(err, ami.ErrDecode),
		errors.Is(err, ami.ErrExtraction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "lookup failed", "err", err, "request_id", middleware.GetReqID(r.Context()))
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Unable to encode JSON response", "err", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("uami lookup service available", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", "err", err)
			return err
		}
		s.logger.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
