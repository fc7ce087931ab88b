package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"cradle/internal/catalog"
	"cradle/internal/config"
	"cradle/internal/logging"
)

// Server serves story media and the JSON API.
type Server struct {
	bind       string
	libraryDir string
	logPath    string
	logger     *slog.Logger
	store      *catalog.Store
	startedAt  time.Time

	listener net.Listener
	server   *http.Server
}

// New constructs a server from configuration. The catalog store may be nil;
// catalog endpoints then answer 503.
func New(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *Server {
	srv := &Server{
		bind:       cfg.Paths.APIBind,
		libraryDir: cfg.Paths.LibraryDir,
		logPath:    cfg.LogFilePath(),
		logger:     logging.NewComponentLogger(logger, "server"),
		store:      store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/audio/stories/", srv.handleMediaFile("audio"))
	mux.HandleFunc("/images/stories/", srv.handleMediaFile("images"))
	mux.HandleFunc("/api/stories", srv.handleStories)
	mux.HandleFunc("/api/stories/", srv.handleStoryMedia)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/logs", srv.handleLogs)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins listening and serving until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	s.startedAt = time.Now().UTC()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound address once the server is started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
