package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/redistricting/internal/platform/tui"
	"github.com/vovakirdan/redistricting/internal/platform/ws"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Redistricting SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own campaign with a difficulty menu.
Runs are stored per-server (all users share the same scoreboard), under
the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.redistricting/host_key

Examples:
  redistricting serve                           # Listen on :23234 with auto-generated key
  redistricting serve --ssh :2222               # Listen on port 2222
  redistricting serve --host-key ./my_host_key  # Use specific host key
  redistricting serve --db ./scores.db          # Use specific database

With --ws the same campaigns are also served as JSON over WebSocket at
/ws, with the scoreboard at /api/scores and a join QR code at /api/qr.

Examples:
  redistricting serve --ws :8080                # Also serve WebSocket play

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "WebSocket server address (disabled if empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	tuning, _, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}

	logger, err := newLogger(os.Stderr, "redistricting-ssh")
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Tuning:      tuning,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := []func(context.Context) error{server.ListenAndServe}
	if flagWSAddr != "" {
		wsServer := ws.New(flagWSAddr, server.Store(), tuning, logger.WithPrefix("redistricting-ws"))
		servers = append(servers, wsServer.ListenAndServe)
		fmt.Printf("Serving WebSocket play on ws://localhost:%s/ws\n", portOf(flagWSAddr))
	}

	fmt.Printf("Starting Redistricting SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	serveErr := serveAll(ctx, servers...)
	if err := server.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
	if serveErr != nil {
		fail("server: %v", serveErr)
	}
}

// serveAll runs every server until ctx is done or one of them fails, and
// returns once all of them have stopped.
func serveAll(ctx context.Context, servers ...func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, len(servers))
	for _, serve := range servers {
		go func() {
			err := serve(ctx)
			cancel()
			errc <- err
		}()
	}

	var errs []error
	for range servers {
		if err := <-errc; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
