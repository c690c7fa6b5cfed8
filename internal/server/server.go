// Package server exposes the thin HTTP surface around the monitor:
// the raw snapshot (GET /get_data), the producer trigger (GET /run_ai),
// the live dashboard feed (GET /ws), and Prometheus metrics
// (GET /metrics). The server never participates in the monitoring cycle
// itself; it is an alternate path to the same snapshot file.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"os/exec"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/buildwatch/safesite/internal/snapshot"
	"github.com/buildwatch/safesite/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from anywhere during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server handles the HTTP API.
type Server struct {
	reader      *snapshot.Reader
	hub         *ws.Hub
	producerCmd []string
	logger      zerolog.Logger
}

// New creates a server. producerCmd may be empty, which disables /run_ai.
func New(reader *snapshot.Reader, hub *ws.Hub, producerCmd []string, logger zerolog.Logger) *Server {
	return &Server{
		reader:      reader,
		hub:         hub,
		producerCmd: producerCmd,
		logger:      logger,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/get_data", s.handleGetData)
	r.Get("/run_ai", s.handleRunAI)
	r.Get("/ws", s.handleWebSocket)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// handleGetData returns the raw snapshot JSON, or 404 when the producer
// has not written one yet.
func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	raw, err := s.reader.Raw()
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "snapshot not found"})
			return
		}
		s.logger.Error().Err(err).Msg("failed to read snapshot for /get_data")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

// handleRunAI runs the configured producer command synchronously and then
// returns the refreshed snapshot.
func (s *Server) handleRunAI(w http.ResponseWriter, r *http.Request) {
	if len(s.producerCmd) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "producer command not configured",
		})
		return
	}

	cmd := exec.CommandContext(r.Context(), s.producerCmd[0], s.producerCmd[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		s.logger.Error().Err(err).Bytes("output", out).Msg("producer command failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	raw, err := s.reader.Raw()
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"status":  "error",
			"message": "snapshot not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   json.RawMessage(raw),
	})
}

// handleWebSocket upgrades the connection and attaches it to the feed hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "live feed not available", http.StatusServiceUnavailable)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	ws.NewClient(s.hub, conn)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
