// Package server exposes the estimate pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/philipparndt/powdercalc/pkg/estimate"
	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/packing"
	"github.com/philipparndt/powdercalc/pkg/pricing"
	"github.com/philipparndt/powdercalc/pkg/stl"
)

// MaxBodySize is the size of the largest binary STL the decoder accepts.
const MaxBodySize = stl.HeaderSize + 4 + stl.RecordSize*stl.MaxTriangles

// Server holds the default settings requests start from. Price updates
// replace the server's table; each request works on its own copy.
type Server struct {
	mu       sync.RWMutex
	settings estimate.Settings
	router   chi.Router
}

// New returns a server whose requests default to s
func New(s estimate.Settings) *Server {
	s.Pricing = s.Pricing.Clone()
	srv := &Server{settings: s}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", srv.handleHealth)
	r.Get("/printers", srv.handlePrinters)
	r.Get("/pricing", srv.handlePricing)
	r.Put("/pricing/{currency}", srv.handlePricingUpdate)
	r.Post("/estimate", srv.handleEstimate)
	r.Post("/estimate/manual", srv.handleEstimateManual)

	srv.router = r
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Settings returns a copy of the current defaults
func (s *Server) Settings() estimate.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.Pricing = s.settings.Pricing.Clone()
	return out
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Print("shutting down")
		if err := hs.Shutdown(context.Background()); err != nil {
			return err
		}
		return nil
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps pipeline errors to response codes
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, stl.ErrTooLarge), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, stl.ErrMalformed), errors.Is(err, estimate.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pricing.ErrUnknownCurrency),
		errors.Is(err, pricing.ErrInvalidPrice),
		errors.Is(err, orientation.ErrUnknownType),
		errors.Is(err, packing.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
