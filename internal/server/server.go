// Package server exposes the dispatcher over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/dispatch"
)

// RunningConfig is returned by /api/config so clients can see what the
// server is using.
type RunningConfig struct {
	Config     *config.Config `json:"config"`
	ConfigFile string         `json:"config_file,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	ReloadedAt time.Time      `json:"reloaded_at,omitempty"`
}

// DispatchRequest is the body of POST /api/dispatch. The session travels
// with every request; the server keeps none.
type DispatchRequest struct {
	Session *dispatch.Session `json:"session,omitempty"`
	Event   dispatch.Event    `json:"event"`
}

// DispatchReply is returned by /api/dispatch and sent on /api/ws.
type DispatchReply struct {
	Session  *dispatch.Session `json:"session,omitempty"`
	Response dispatch.Response `json:"response"`
	Error    *errors.Error     `json:"error,omitempty"`
}

// Server serves the dispatcher. The config and dispatcher can be swapped at
// runtime by Reload.
type Server struct {
	logger   *logrus.Entry
	server   *http.Server
	upgrader websocket.Upgrader

	mu         sync.RWMutex
	cfg        *config.Config
	dispatcher *dispatch.Dispatcher
	running    RunningConfig
}

// New creates a Server for cfg.
func New(cfg *config.Config, configFile string, logger *logrus.Entry) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 16,
			WriteBufferSize: 1 << 16,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		cfg:        cfg,
		dispatcher: dispatch.New(dispatch.OptionsFromConfig(cfg)),
		running: RunningConfig{
			Config:     cfg,
			ConfigFile: configFile,
			StartedAt:  time.Now(),
		},
	}
}

// Reload swaps in a new configuration. In-flight requests finish with the
// dispatcher they started with.
func (s *Server) Reload(cfg *config.Config) {
	d := dispatch.New(dispatch.OptionsFromConfig(cfg))
	s.mu.Lock()
	s.cfg = cfg
	s.dispatcher = d
	s.running.Config = cfg
	s.running.ReloadedAt = time.Now()
	s.mu.Unlock()
	s.logger.Info("Configuration reloaded")
}

// Config returns the active configuration.
func (s *Server) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Server) currentDispatcher() *dispatch.Dispatcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dispatcher
}

// Handler returns the routed handler, wrapped for cleartext HTTP/2.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/dispatch", s.handleDispatch)
	mux.HandleFunc("/api/config", s.handleGetConfig)
	mux.HandleFunc("/api/ws", s.handleWebSocket)

	return h2c.NewHandler(mux, &http2.Server{})
}

// ListenAndServe listens on the configured host:port and blocks until the
// server stops or fails.
func (s *Server) ListenAndServe() error {
	cfg := s.Config()
	listener, err := net.Listen("tcp", cfg.Server.Address())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to listen").
			WithDetail("address", cfg.Server.Address())
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener.
func (s *Server) Serve(listener net.Listener) error {
	timeout := s.Config().Server.ReadTimeoutDuration()

	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeout,
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.WithField("address", listener.Addr().String()).Info("Server listening")
	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	session := req.Session
	if session == nil {
		session = dispatch.NewSession()
	}

	resp, err := s.currentDispatcher().Handle(r.Context(), session, req.Event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DispatchReply{Session: session, Response: resp})
}

// handleGetConfig returns the running configuration as JSON.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, running)
}

// handleWebSocket gives each connection its own session and handles its
// events in order. Replies carry the response only; the session stays on
// the server for the life of the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	session := dispatch.NewSession()
	log := s.logger.WithField("remote", r.RemoteAddr)
	log.Debug("WebSocket client connected")

	for {
		var ev dispatch.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("WebSocket read failed")
			} else {
				log.Debug("WebSocket client disconnected")
			}
			return
		}

		reply := DispatchReply{}
		resp, err := s.currentDispatcher().Handle(r.Context(), session, ev)
		if err != nil {
			reply.Error = asError(err)
		} else {
			reply.Response = resp
		}
		if err := conn.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("WebSocket write failed")
			return
		}
	}
}

func asError(err error) *errors.Error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	return errors.Wrap(err, errors.ErrCodeInternal, "internal error")
}

func writeError(w http.ResponseWriter, err error) {
	e := asError(err)
	status := http.StatusInternalServerError
	switch e.Code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFigure, errors.ErrCodeInvalidColor:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, DispatchReply{Error: e})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
