package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestServeAllWaitsForEveryServer(t *testing.T) {
	var drained atomic.Bool
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond) // graceful shutdown
		drained.Store(true)
		return nil
	}
	errBind := errors.New("address in use")
	failing := func(context.Context) error {
		return errBind
	}

	err := serveAll(context.Background(), slow, failing)
	if !errors.Is(err, errBind) {
		t.Errorf("serveAll() = %v, expected %v", err, errBind)
	}
	if !drained.Load() {
		t.Error("serveAll returned before the other server finished shutting down")
	}
}

func TestServeAllStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var stopped atomic.Int32
	serve := func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Add(1)
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- serveAll(ctx, serve, serve) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serveAll() = %v, expected nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serveAll did not return after cancel")
	}
	if stopped.Load() != 2 {
		t.Errorf("%d servers stopped, expected 2", stopped.Load())
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "23234"},
		{"localhost:8080", "8080"},
		{"8080", "8080"},
	}
	for _, tc := range tests {
		if got := portOf(tc.addr); got != tc.want {
			t.Errorf("portOf(%q) = %q, expected %q", tc.addr, got, tc.want)
		}
	}
}
