// Package ws serves Redistricting over WebSocket with a JSON protocol.
// Every connection plays its own campaign; the only shared state is the
// scores database.
package ws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	qr "github.com/skip2/go-qrcode"

	"github.com/vovakirdan/redistricting/internal/config"
	"github.com/vovakirdan/redistricting/internal/storage"
)

// qrSize is the edge of the join QR code image in pixels.
const qrSize = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server hosts WebSocket play.
type Server struct {
	addr   string
	store  *storage.Store
	tuning config.RedistrictingConfig
	logger *log.Logger
	http   *http.Server
}

// New creates a server listening on addr. store may be nil.
func New(addr string, store *storage.Store, tuning config.RedistrictingConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		addr:   addr,
		store:  store,
		tuning: tuning,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/api/qr", s.HandleQR)
	mux.HandleFunc("/api/scores", s.HandleScores)
	return mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting WebSocket server", "address", s.addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ws: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// HandleWS upgrades a request and starts a client.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade error", "remote", r.RemoteAddr, "error", err)
		return
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("ws session started")

	client := newClient(conn, s.store, s.tuning, logger)
	go client.WritePump()
	go client.ReadPump()
}

// HandleQR returns a PNG QR code of the WebSocket URL for this host.
func (s *Server) HandleQR(w http.ResponseWriter, r *http.Request) {
	url := fmt.Sprintf("ws://%s/ws", r.Host)
	png, err := qr.Encode(url, qr.Medium, qrSize)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png) //nolint:errcheck // Client went away
}

// HandleScores returns the best runs as JSON.
func (s *Server) HandleScores(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		http.Error(w, "scores are not recorded", http.StatusServiceUnavailable)
		return
	}
	runs, err := s.store.TopRuns(10)
	if err != nil {
		s.logger.Error("could not load runs", "error", err)
		http.Error(w, "could not load runs", http.StatusInternalServerError)
		return
	}

	out := make([]RunMsg, len(runs))
	for i, run := range runs {
		out[i] = runMsg(run)
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, out)
}
