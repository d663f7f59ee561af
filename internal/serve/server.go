// Package serve exposes a rendered board over HTTP.
//
// The server keeps one board built from a manifest and refreshes it on
// demand: a request for the option document runs an update cycle, captures
// the emitted messages and serves the option plus the data payloads the
// option references. Because the board keeps its data serials alive
// between cycles, clients can poll /data/{serial} without forcing a full
// re-render.
package serve

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/syampillai/sochart/pkg/board"
	"github.com/syampillai/sochart/pkg/manifest"
	"github.com/syampillai/sochart/pkg/part"
)

// Server serves one manifest-built board.
type Server struct {
	logger    *log.Logger
	board     *board.Board
	boardOpts []board.Option

	mu        sync.Mutex
	transport *board.MemoryTransport
	option    []byte
	data      map[int]json.RawMessage
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBoardOptions forwards options to the underlying board, for example a
// cache backend.
func WithBoardOptions(opts ...board.Option) Option {
	return func(s *Server) { s.boardOpts = append(s.boardOpts, opts...) }
}

// New builds a server around a manifest.
func New(m *manifest.Manifest, opts ...Option) (*Server, error) {
	s := &Server{
		logger: log.Default(),
		data:   map[int]json.RawMessage{},
	}
	for _, opt := range opts {
		opt(s)
	}

	reg := part.NewRegistry()
	_, comps, err := m.Build(reg)
	if err != nil {
		return nil, err
	}

	boardOpts := append([]board.Option{board.WithLogger(s.logger)}, s.boardOpts...)
	if m.Board != "" {
		boardOpts = append(boardOpts, board.WithName(m.Board))
	}
	s.transport = board.NewMemoryTransport()
	s.board = board.New(reg, s.transport, boardOpts...)
	s.board.Add(comps...)
	return s, nil
}

// refresh runs an update cycle and folds the emitted messages into the
// served state. Serials stay assigned between cycles.
func (s *Server) refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.UpdateAndKeepData(ctx); err != nil {
		return err
	}
	for _, msg := range s.transport.Drain() {
		switch msg.Command {
		case board.CommandInit:
			s.option = msg.Payload
		case board.CommandInitData, board.CommandUpdateData:
			s.data[msg.Serial] = msg.Payload
		}
	}
	return nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/option", s.handleOption)
	r.Get("/data/{serial}", s.handleData)
	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("serving board", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleOption(w http.ResponseWriter, r *http.Request) {
	if err := s.refresh(r.Context()); err != nil {
		s.logger.Error("update failed", "err", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	option := s.option
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(option)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	serial, err := strconv.Atoi(chi.URLParam(r, "serial"))
	if err != nil {
		http.Error(w, "invalid serial", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	payload, ok := s.data[serial]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown serial", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// requestLogger attaches a request ID and logs each request with its
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}
