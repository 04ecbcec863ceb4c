package ws

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/vovakirdan/redistricting/internal/district"
	"github.com/vovakirdan/redistricting/internal/game"
	"github.com/vovakirdan/redistricting/internal/storage"
)

// Envelope is the standard WebSocket message wrapper.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope creates an envelope with a JSON-encoded payload.
func NewEnvelope(typ string, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Type: typ}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// Message types: Server → Client
const (
	MsgState        = "state"
	MsgLevelCleared = "level_cleared"
	MsgGameOver     = "game_over"
	MsgError        = "error"
)

// Message types: Client → Server
const (
	MsgStart    = "start"
	MsgAssign   = "assign"
	MsgUnassign = "unassign"
	MsgClear    = "clear"
	MsgConfirm  = "confirm"
	MsgReroll   = "reroll"
	MsgConcede  = "concede"
	MsgGetState = "get_state"
)

// StartMsg begins a new campaign, ending any previous one.
type StartMsg struct {
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	Player     string `json:"player,omitempty"`
}

// CellMsg addresses one tile. District is ignored by unassign.
type CellMsg struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	District int `json:"district"`
}

// LevelMsg describes a level configuration.
type LevelMsg struct {
	Districts       int     `json:"districts"`
	GoodPct         float64 `json:"good_pct"`
	PopulatedPct    float64 `json:"populated_pct"`
	MapSize         int     `json:"map_size"`
	MinDistrictSize int     `json:"min_district_size"`
	MaxDistrictSize int     `json:"max_district_size"`
}

// DistrictMsg is the evaluation of one district.
type DistrictMsg struct {
	ID          int    `json:"id"`
	Population  int    `json:"population"`
	Favorable   int    `json:"favorable"`
	Unfavorable int    `json:"unfavorable"`
	Contiguous  bool   `json:"contiguous"`
	Winner      string `json:"winner"`
	Validity    string `json:"validity"`
}

// StateMsg is the full observable state of a campaign.
type StateMsg struct {
	RunID        string        `json:"run_id,omitempty"`
	Number       int           `json:"number"`
	Score        int           `json:"score"`
	Seed         int64         `json:"seed"`
	State        string        `json:"state"`
	Level        LevelMsg      `json:"level"`
	MinFavorable int           `json:"min_favorable"`
	Board        []string      `json:"board"`     // F favorable, u unfavorable, . empty
	Districts    []string      `json:"districts"` // district id per tile, . unassigned
	Results      []DistrictMsg `json:"results"`
	Won          int           `json:"won"`
	Unassigned   int           `json:"unassigned"`
}

// LevelClearedMsg announces a confirmed plan.
type LevelClearedMsg struct {
	Number int      `json:"number"`
	Score  int      `json:"score"`
	Level  LevelMsg `json:"level"`
}

// GameOverMsg announces the end of a run.
type GameOverMsg struct {
	Score int `json:"score"`
}

// RunMsg is one entry of the scoreboard.
type RunMsg struct {
	ID            string    `json:"id"`
	Player        string    `json:"player"`
	Score         int       `json:"score"`
	LevelsCleared int       `json:"levels_cleared"`
	Difficulty    string    `json:"difficulty"`
	EndReason     string    `json:"end_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}

func levelMsg(l district.LevelConfig) LevelMsg {
	return LevelMsg{
		Districts:       l.Districts,
		GoodPct:         l.GoodPct,
		PopulatedPct:    l.PopulatedPct,
		MapSize:         l.MapSize,
		MinDistrictSize: l.MinDistrictSize,
		MaxDistrictSize: l.MaxDistrictSize,
	}
}

// stateMsg converts a session snapshot and its district results.
func stateMsg(snap game.Snapshot, results []district.DistrictResult, runID string) StateMsg {
	msg := StateMsg{
		RunID:        runID,
		Number:       snap.Number,
		Score:        snap.Score,
		Seed:         snap.Seed,
		State:        string(snap.State),
		Level:        levelMsg(snap.Level),
		MinFavorable: snap.MinFavorable,
		Board:        strings.Split(strings.TrimSuffix(snap.Board, "\n"), "\n"),
		Districts:    strings.Split(strings.TrimSuffix(snap.Districts, "\n"), "\n"),
		Results:      make([]DistrictMsg, len(results)),
		Won:          snap.Summary.Favorable,
		Unassigned:   snap.Summary.Unassigned,
	}
	for i, r := range results {
		msg.Results[i] = DistrictMsg{
			ID:          int(r.ID),
			Population:  r.Population,
			Favorable:   r.Favorable,
			Unfavorable: r.Unfavorable,
			Contiguous:  r.Contiguous,
			Winner:      r.Winner.String(),
			Validity:    r.Validity.String(),
		}
	}
	return msg
}

func runMsg(r storage.Run) RunMsg {
	return RunMsg{
		ID:            r.ID,
		Player:        r.Player,
		Score:         r.Score,
		LevelsCleared: r.LevelsCleared,
		Difficulty:    r.Difficulty,
		EndReason:     r.EndReason,
		CreatedAt:     r.CreatedAt,
	}
}

func writeJSON(w io.Writer, v any) {
	json.NewEncoder(w).Encode(v) //nolint:errcheck // Client went away
}
