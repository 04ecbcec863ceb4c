package ws

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/redistricting/internal/config"
	"github.com/vovakirdan/redistricting/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	srv := New("", store, config.DefaultRedistrictingConfig(), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	if err := conn.WriteJSON(env); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
}

// expect reads the next message and checks its type.
func expect(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if env.Type != typ {
		t.Fatalf("message type = %q (%s), expected %q", env.Type, env.Payload, typ)
	}
	if payload != nil {
		if err := json.Unmarshal(env.Payload, payload); err != nil {
			t.Fatalf("payload: %v", err)
		}
	}
}

func TestWebSocketRequiresStart(t *testing.T) {
	conn := dial(t, newTestServer(t, nil))

	send(t, conn, MsgGetState, nil)
	var msg ErrorMsg
	expect(t, conn, MsgError, &msg)
	if !strings.Contains(msg.Message, "start") {
		t.Errorf("error = %q, expected a hint to start", msg.Message)
	}
}

func TestWebSocketPlay(t *testing.T) {
	conn := dial(t, newTestServer(t, nil))

	send(t, conn, MsgStart, StartMsg{Seed: 42})
	var state StateMsg
	expect(t, conn, MsgState, &state)
	if state.Number != 1 || state.Score != 0 || state.Seed != 42 {
		t.Errorf("start state = level %d score %d seed %d, expected 1/0/42", state.Number, state.Score, state.Seed)
	}
	if state.State != "playing" || state.Level.MapSize != 8 || len(state.Board) != 8 {
		t.Errorf("start state = %+v, expected an 8x8 playing board", state)
	}
	if len(state.Results) != state.Level.Districts {
		t.Errorf("%d results, expected one per district", len(state.Results))
	}

	send(t, conn, MsgAssign, CellMsg{X: 0, Y: 0, District: 2})
	expect(t, conn, MsgState, &state)
	if state.Districts[0][0] != '2' {
		t.Errorf("districts row 0 = %q, expected tile (0, 0) in district 2", state.Districts[0])
	}

	send(t, conn, MsgUnassign, CellMsg{X: 0, Y: 0})
	expect(t, conn, MsgState, &state)
	if state.Districts[0][0] != '.' {
		t.Errorf("districts row 0 = %q, expected tile (0, 0) unassigned", state.Districts[0])
	}

	tests := []struct {
		name    string
		typ     string
		payload any
	}{
		{"out of bounds", MsgAssign, CellMsg{X: 99, Y: 0, District: 0}},
		{"bad district", MsgAssign, CellMsg{X: 0, Y: 0, District: 7}},
		{"missing payload", MsgAssign, nil},
		{"unsolved confirm", MsgConfirm, nil},
		{"unknown type", "dance", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			send(t, conn, tc.typ, tc.payload)
			expect(t, conn, MsgError, nil)
		})
	}

	send(t, conn, MsgConcede, nil)
	var over GameOverMsg
	expect(t, conn, MsgGameOver, &over)
	if over.Score != 0 {
		t.Errorf("final score = %d, expected 0", over.Score)
	}
	expect(t, conn, MsgState, &state)
	if state.State != "game_over" {
		t.Errorf("state = %q, expected game_over", state.State)
	}

	send(t, conn, MsgReroll, nil)
	expect(t, conn, MsgError, nil)

	send(t, conn, MsgStart, StartMsg{Difficulty: "hard", Seed: 7})
	expect(t, conn, MsgState, &state)
	if state.State != "playing" || state.Level.MapSize != 10 {
		t.Errorf("restart state = %+v, expected a hard board in play", state)
	}
}

func TestWebSocketRecordsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ts := newTestServer(t, store)
	conn := dial(t, ts)

	send(t, conn, MsgStart, StartMsg{Seed: 3, Player: "grace"})
	var state StateMsg
	expect(t, conn, MsgState, &state)
	if state.RunID == "" {
		t.Fatal("run should be recorded")
	}

	send(t, conn, MsgConcede, nil)
	expect(t, conn, MsgGameOver, nil)
	expect(t, conn, MsgState, nil)

	run, err := store.RunByID(state.RunID)
	if err != nil || run == nil {
		t.Fatalf("RunByID: %v, %v", run, err)
	}
	if run.Player != "grace" || run.EndReason != storage.EndConceded {
		t.Errorf("run = %+v, expected grace conceded", run)
	}

	resp, err := http.Get(ts.URL + "/api/scores")
	if err != nil {
		t.Fatalf("GET /api/scores: %v", err)
	}
	defer resp.Body.Close()
	var runs []RunMsg
	if err := json.NewDecoder(resp.Body).Decode(&runs); err != nil {
		t.Fatalf("decode scores: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != state.RunID {
		t.Errorf("scores = %+v, expected the one run", runs)
	}
}

func TestScoresWithoutStore(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/scores")
	if err != nil {
		t.Fatalf("GET /api/scores: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, expected %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestHandleQR(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/qr")
	if err != nil {
		t.Fatalf("GET /api/qr: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, expected image/png", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Error("body should be a PNG image")
	}
}
