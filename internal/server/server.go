// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/message"
	"k8s.io/apimachinery/pkg/util/wait"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/ironcore-dev/hardware-inventory/internal/i18n"
	"github.com/ironcore-dev/hardware-inventory/internal/store"
)

// Server exposes the inventory stores as JSON over HTTP.
type Server struct {
	addr            string
	mux             *http.ServeMux
	log             logr.Logger
	memory          *store.MemoryStore
	deconfiguration *store.DeconfigurationStore
	refreshInterval time.Duration
}

// MemorySizeRequest is the body of a logical memory size update.
type MemorySizeRequest struct {
	Size string `json:"size"`
}

// MessageResponse carries a localized confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a localized error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer initializes and returns a new Server instance. A zero refreshInterval
// disables the periodic refresh.
func NewServer(
	log logr.Logger,
	addr string,
	memory *store.MemoryStore,
	deconfiguration *store.DeconfigurationStore,
	refreshInterval time.Duration,
) *Server {
	server := &Server{
		addr:            addr,
		mux:             http.NewServeMux(),
		log:             log,
		memory:          memory,
		deconfiguration: deconfiguration,
		refreshInterval: refreshInterval,
	}
	server.routes()
	return server
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// routes registers the server's routes.
func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/memory", s.memoryHandler)
	s.mux.HandleFunc("/api/v1/deconfiguration/cores", s.coresHandler)
	s.mux.HandleFunc("/api/v1/deconfiguration/dimms", s.dimmsHandler)
	s.mux.HandleFunc("/api/v1/refresh", s.refreshHandler)
	s.mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
}

// memoryHandler handles the /api/v1/memory endpoint.
func (s *Server) memoryHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, s.memory.Settings())
	case http.MethodPatch:
		ctx, printer := s.requestContext(r)
		var req MemorySizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Size == "" {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: printer.Sprintf(i18n.ErrorInvalidRequest)})
			return
		}
		msg, err := s.memory.SaveSettings(ctx, req.Size)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
	default:
		http.Error(w, "Only GET and PATCH methods are allowed", http.StatusMethodNotAllowed)
	}
}

// coresHandler handles the /api/v1/deconfiguration/cores endpoint.
func (s *Server) coresHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, s.deconfiguration.Cores())
	case http.MethodPatch:
		s.handleSettingsState(w, r, s.deconfiguration.UpdateCoresSettingsState)
	default:
		http.Error(w, "Only GET and PATCH methods are allowed", http.StatusMethodNotAllowed)
	}
}

// dimmsHandler handles the /api/v1/deconfiguration/dimms endpoint.
func (s *Server) dimmsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, s.deconfiguration.Dimms())
	case http.MethodPatch:
		s.handleSettingsState(w, r, s.deconfiguration.UpdateSettingsState)
	default:
		http.Error(w, "Only GET and PATCH methods are allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSettingsState(
	w http.ResponseWriter,
	r *http.Request,
	update func(context.Context, store.SettingsState) error,
) {
	ctx, printer := s.requestContext(r)
	var state store.SettingsState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil || state.URI == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: printer.Sprintf(i18n.ErrorInvalidRequest)})
		return
	}
	if err := update(ctx, state); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refreshHandler handles the /api/v1/refresh endpoint.
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, printer := s.requestContext(r)
	if err := s.refresh(ctx); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: printer.Sprintf(i18n.ErrorInventoryUnavailable)})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requestContext(r *http.Request) (context.Context, *message.Printer) {
	printer := i18n.Printer(i18n.ResolveTag(r))
	ctx := logr.NewContext(r.Context(), s.log)
	return i18n.IntoContext(ctx, printer), printer
}

// refresh reads all stores. Failures are logged by the stores and the cached
// state is served until the next successful read.
func (s *Server) refresh(ctx context.Context) error {
	return errors.Join(s.memory.Refresh(ctx), s.deconfiguration.Refresh(ctx))
}

func (s *Server) periodicRefresh(ctx context.Context) {
	if err := s.refresh(ctx); err != nil {
		s.log.V(1).Info("Inventory refresh incomplete", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var userErr *store.UserError
	if errors.As(err, &userErr) {
		s.writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: userErr.Message})
		return
	}
	s.log.Error(err, "Request failed")
	s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error(err, "Failed to encode response")
	}
}

// Start starts the server on the specified address and refreshes the stores
// periodically until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting inventory server", "address", s.addr)
	server := &http.Server{Addr: s.addr, Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}

	refreshCtx := logr.NewContext(ctx, s.log)
	if s.refreshInterval > 0 {
		go wait.UntilWithContext(refreshCtx, s.periodicRefresh, s.refreshInterval)
	} else {
		go s.periodicRefresh(refreshCtx)
	}

	// Start the server in a new goroutine.
	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP inventory server ListenAndServe: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("Shutting down inventory server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server Shutdown: %w", err)
		}
		s.log.Info("Inventory server graciously stopped")
		return nil
	case err := <-errChan:
		return err
	}
}
