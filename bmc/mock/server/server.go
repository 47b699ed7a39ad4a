// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

//go:embed data
var dataFS embed.FS

// Fault is a canned error response returned instead of handling a request.
type Fault struct {
	StatusCode int
	Body       string
}

type MockServer struct {
	log     logr.Logger
	addr    string
	handler http.Handler
	mu      sync.Mutex

	overrides sync.Map
	faults    sync.Map
}

func NewMockServer(log logr.Logger, addr string) *MockServer {
	mux := http.NewServeMux()
	server := &MockServer{
		addr: addr,
		log:  log,
	}

	mux.HandleFunc("/redfish/v1/", server.redfishHandler)
	server.handler = mux

	return server
}

// Handler returns the HTTP handler serving the mockups.
func (s *MockServer) Handler() http.Handler {
	return s.handler
}

// InjectFault makes every request with method on urlPath fail with fault.
func (s *MockServer) InjectFault(method, urlPath string, fault Fault) {
	s.faults.Store(faultKey(method, urlPath), fault)
}

// Reset drops all PATCHed state and injected faults.
func (s *MockServer) Reset() {
	s.overrides.Clear()
	s.faults.Clear()
}

func faultKey(method, urlPath string) string {
	return method + " " + strings.TrimRight(urlPath, "/")
}

func (s *MockServer) redfishHandler(w http.ResponseWriter, r *http.Request) {
	s.log.V(1).Info("Received request", "method", r.Method, "path", r.URL.Path)

	if value, ok := s.faults.Load(faultKey(r.Method, r.URL.Path)); ok {
		fault := value.(Fault)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fault.StatusCode)
		if _, err := w.Write([]byte(fault.Body)); err != nil {
			s.log.Error(err, "Failed to write response")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleRedfishGET(w, r)
	case http.MethodPost:
		s.handleRedfishPOST(w, r)
	case http.MethodPatch:
		s.handleRedfishPATCH(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (s *MockServer) handleRedfishPATCH(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	urlPath := resolvePath(r.URL.Path)
	body, err := io.ReadAll(r.Body)
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			s.log.Error(err, "Failed to close request body")
		}
	}(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var update map[string]any
	if err := json.Unmarshal(body, &update); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Load existing resource: from override if exists, else embedded
	base, err := s.load(urlPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// If it's a Collection (has "Members"), reject
	if _, isCollection := base["Members"]; isCollection {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	mergeJSON(base, update)
	s.overrides.Store(urlPath, deepCopy(base))

	w.WriteHeader(http.StatusNoContent)
}

func (s *MockServer) load(urlPath string) (map[string]any, error) {
	if cached, ok := s.overrides.Load(urlPath); ok {
		return deepCopy(cached.(map[string]any)), nil
	}
	data, err := dataFS.ReadFile(urlPath)
	if err != nil {
		return nil, err
	}
	var base map[string]any
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("corrupt embedded JSON %s: %w", urlPath, err)
	}
	return base, nil
}

func deepCopy(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		if vMap, ok := v.(map[string]any); ok {
			c[k] = deepCopy(vMap)
		} else {
			c[k] = v
		}
	}
	return c
}

func resolvePath(urlPath string) string {
	trimmed := strings.TrimPrefix(urlPath, "/redfish/v1")
	trimmed = strings.Trim(trimmed, "/")

	if trimmed == "" {
		return "data/index.json"
	}
	return path.Join("data", trimmed, "index.json")
}

func (s *MockServer) handleRedfishGET(w http.ResponseWriter, r *http.Request) {
	urlPath := resolvePath(r.URL.Path)

	if cached, ok := s.overrides.Load(urlPath); ok {
		resp, err := json.MarshalIndent(cached, "", "  ")
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(resp); err != nil {
			s.log.Error(err, "Failed to write response")
		}
		return
	}

	content, err := dataFS.ReadFile(urlPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(content); err != nil {
		s.log.Error(err, "Failed to write response")
	}
}

func mergeJSON(base, update map[string]any) {
	for k, v := range update {
		if bv, ok := base[k]; ok {
			if bvMap, ok1 := bv.(map[string]any); ok1 {
				if vMap, ok2 := v.(map[string]any); ok2 {
					mergeJSON(bvMap, vMap)
					continue
				}
			}
		}
		base[k] = v
	}
}

// handleRedfishPOST accepts session creation and actions without side effects.
func (s *MockServer) handleRedfishPOST(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			s.log.Error(err, "Failed to close request body")
		}
	}(r.Body)

	s.log.V(1).Info("POST body received", "path", r.URL.Path, "size", len(body))

	w.Header().Set("Content-Type", "application/json")
	if strings.HasSuffix(strings.TrimRight(r.URL.Path, "/"), "/SessionService/Sessions") {
		w.Header().Set("X-Auth-Token", "mock-token")
		w.Header().Set("Location", "/redfish/v1/SessionService/Sessions/1")
	}
	w.WriteHeader(http.StatusCreated)
	if _, err = w.Write([]byte(`{"@odata.id": "/redfish/v1/SessionService/Sessions/1", "Id": "1"}`)); err != nil {
		s.log.Error(err, "Failed to write response")
	}
}

// Start starts the mock server and stops on ctx cancellation.
func (s *MockServer) Start(ctx context.Context) error {
	if s.handler == nil {
		return fmt.Errorf("mock redfish handler is nil")
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})

	go func() {
		s.log.Info("Started mock server", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(err, "Server failed")
		}
		close(done)
	}()

	<-ctx.Done()
	s.log.Info("Shutting down mock server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error(err, "Mock server shutdown failed")
	}
	<-done

	return nil
}
