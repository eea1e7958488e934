package mcp

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	// Packages
	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	otelhttp "go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

///////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Maximum size of a request body
	maxRequestSize = 1 << 20

	// Maximum time to process a request
	requestTimeout = 60 * time.Second
)

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Router returns an HTTP handler which accepts one JSON-RPC message per
// POST request on /mcp, and reports liveness on /health
func (server *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", server.handleHealth)
	r.Post("/mcp", server.handleMessage)

	return otelhttp.NewHandler(r, server.name)
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (server *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	// Notifications are accepted without a body
	response := server.Handle(r.Context(), payload)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(response)
}
