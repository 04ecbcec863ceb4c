package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestSSHServerStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.Logger = log.New(io.Discard)

	server, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if server.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, expected %q", server.Addr(), cfg.Address)
	}
	if server.Store() == nil {
		t.Fatal("scores database should be open")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, expected nil after cancel", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}

	// The store outlives the listener so other servers can finish with it.
	if _, err := server.Store().TopRuns(1); err != nil {
		t.Errorf("store closed with the listener: %v", err)
	}
	if err := server.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
