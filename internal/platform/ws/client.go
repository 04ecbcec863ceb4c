package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/redistricting/internal/config"
	"github.com/vovakirdan/redistricting/internal/district"
	"github.com/vovakirdan/redistricting/internal/game"
	"github.com/vovakirdan/redistricting/internal/storage"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

var errNoGame = errors.New("no game in progress, send start first")

// Client is one WebSocket connection playing its own campaign. Messages
// are handled in order on the read goroutine; only the write goroutine
// touches the connection for writing.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	store    *storage.Store
	tuning   config.RedistrictingConfig
	logger   *log.Logger
	session  *game.Session
	recorder *game.Recorder
}

func newClient(conn *websocket.Conn, store *storage.Store, tuning config.RedistrictingConfig, logger *log.Logger) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		store:  store,
		tuning: tuning,
		logger: logger,
	}
}

// ReadPump reads messages from the WebSocket and applies them to the
// campaign. It closes the send channel when the connection ends.
func (c *Client) ReadPump() {
	defer func() {
		if c.session != nil {
			c.recorder.Finish(c.session, storage.EndQuit)
		}
		close(c.send)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws read error", "error", err)
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.sendError(fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := c.handle(env); err != nil {
			c.sendError(err)
		}
	}
}

// WritePump writes queued messages and keeps the connection alive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle applies one client message.
func (c *Client) handle(env Envelope) error {
	if env.Type == MsgStart {
		var msg StartMsg
		if len(env.Payload) > 0 {
			if err := decode(env, &msg); err != nil {
				return err
			}
		}
		return c.start(msg)
	}

	if c.session == nil {
		return errNoGame
	}

	switch env.Type {
	case MsgGetState:
		// Reply below.

	case MsgAssign:
		var msg CellMsg
		if err := decode(env, &msg); err != nil {
			return err
		}
		if err := c.session.Assign(district.C(msg.X, msg.Y), district.DistrictID(msg.District)); err != nil {
			return err
		}

	case MsgUnassign:
		var msg CellMsg
		if err := decode(env, &msg); err != nil {
			return err
		}
		if err := c.session.Unassign(district.C(msg.X, msg.Y)); err != nil {
			return err
		}

	case MsgClear:
		if err := c.session.ClearAll(); err != nil {
			return err
		}

	case MsgReroll:
		if err := c.session.Reroll(); err != nil {
			return err
		}

	case MsgConfirm:
		number := c.session.Number()
		cleared, err := c.session.Confirm()
		if err != nil {
			return err
		}
		c.recorder.LevelCleared(c.session, number, cleared)
		c.sendMessage(MsgLevelCleared, LevelClearedMsg{
			Number: number,
			Score:  c.session.Score(),
			Level:  levelMsg(cleared),
		})

	case MsgConcede:
		score := c.session.Concede()
		c.recorder.Finish(c.session, storage.EndConceded)
		c.sendMessage(MsgGameOver, GameOverMsg{Score: score})

	default:
		return fmt.Errorf("unknown message type %q", env.Type)
	}

	c.sendState()
	return nil
}

// start begins a new campaign, finishing the current one.
func (c *Client) start(msg StartMsg) error {
	preset, err := config.ParsePreset(msg.Difficulty)
	if err != nil {
		return err
	}
	tuning := c.tuning
	config.ApplyPreset(&tuning, preset)

	opts := game.OptionsFromConfig(tuning)
	opts.Seed = msg.Seed
	opts.Logger = c.logger

	session, err := game.New(opts)
	if err != nil {
		return err
	}

	if c.session != nil {
		c.recorder.Finish(c.session, storage.EndQuit)
	}
	c.session = session
	c.recorder = game.NewRecorder(c.store, msg.Player, string(preset), c.logger)
	c.recorder.Start(session)

	c.logger.Info("ws run started", "run", c.recorder.RunID(), "player", msg.Player, "difficulty", preset, "seed", session.Seed())
	c.sendState()
	return nil
}

func (c *Client) sendState() {
	c.sendMessage(MsgState, stateMsg(c.session.Snapshot(), c.session.Results(), c.recorder.RunID()))
}

func (c *Client) sendError(err error) {
	c.sendMessage(MsgError, ErrorMsg{Message: err.Error()})
}

// sendMessage queues a typed message. Messages are dropped when the
// client does not keep up.
func (c *Client) sendMessage(typ string, payload any) {
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		c.logger.Error("marshal error", "type", typ, "error", err)
		return
	}
	data, err := json.Marshal(env)
	if err != nil {
		c.logger.Error("marshal error", "type", typ, "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping message", "type", typ)
	}
}

func decode(env Envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", env.Type)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("%s: invalid payload: %w", env.Type, err)
	}
	return nil
}
