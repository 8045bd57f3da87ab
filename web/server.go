// Package web serves the browser front end: the battle page, a websocket
// per battle, the stats endpoint and read-only battle snapshots.
package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

//go:embed static/index.html
var indexHTML []byte

const maxMessageSize = 4096

// Server owns the hub and builds one battle per websocket connection.
type Server struct {
	pool      []types.StatEntry
	hub       *Hub
	log       *zap.Logger
	rules     engine.Rules
	newRandom func() engine.Random
	upgrader  websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithRules sets the rules every battle uses.
func WithRules(r engine.Rules) Option {
	return func(s *Server) { s.rules = r }
}

// WithRandom sets the factory for each battle's random source.
func WithRandom(fn func() engine.Random) Option {
	return func(s *Server) { s.newRandom = fn }
}

// NewServer creates a server drawing battles from pool.
func NewServer(pool []types.StatEntry, opts ...Option) *Server {
	s := &Server{
		pool:  pool,
		hub:   NewHub(),
		log:   zap.NewNop(),
		rules: engine.DefaultRules(),
		newRandom: func() engine.Random {
			return engine.NewRNG(time.Now().UnixNano())
		},
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hub returns the server's live battles.
func (s *Server) Hub() *Hub { return s.hub }

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	r.Handle("/api/CharacterStats", StatsHandler(s.pool)).Methods(http.MethodGet)
	r.HandleFunc("/api/battles", s.handleBattles).Methods(http.MethodGet)
	r.HandleFunc("/api/battles/{id}", s.handleBattle).Methods(http.MethodGet)
	return r
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// StatsHandler serves pool as the JSON stats array battles are built from.
func StatsHandler(pool []types.StatEntry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, pool)
	})
}

func (s *Server) handleBattles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"battles": s.hub.IDs()})
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	b, ok := s.hub.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "battle not found"})
		return
	}
	writeJSON(w, http.StatusOK, b.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// clientIn is a browser-to-server message.
type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type commandIn struct {
	Text string `json:"text"`
}

type selectIn struct {
	Role types.Role `json:"role"`
	Slot int        `json:"slot"`
}

// resultOut answers every action message.
type resultOut struct {
	Action   types.Action `json:"action,omitempty"`
	Accepted bool         `json:"accepted"`
	Reason   string       `json:"reason,omitempty"`
	Output   []string     `json:"output,omitempty"`
}

// handleWS starts a battle for the connection and runs it until the socket
// closes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &conn{ws: ws}
	defer ws.Close()

	b, err := engine.New(s.pool,
		engine.WithRules(s.rules),
		engine.WithRandom(s.newRandom()),
		engine.WithPresenter(presenter{c: c}),
		engine.WithLogger(s.log),
	)
	if err != nil {
		s.log.Error("starting battle", zap.Error(err))
		c.send(wsMsg{Type: "error", Data: err.Error()})
		return
	}
	s.hub.Add(b)
	defer s.hub.Remove(b.ID())

	log := s.log.With(zap.String("battle", b.ID()), zap.String("remote", r.RemoteAddr))
	log.Info("websocket connected", zap.Int("live_battles", s.hub.Len()))
	defer log.Info("websocket closed")

	if err := c.send(wsMsg{Type: "hello", Data: map[string]any{"id": b.ID(), "scene": b.Scene(), "rules": rulesOut(b.Rules())}}); err != nil {
		return
	}
	b.Refresh()
	c.send(wsMsg{Type: "state", Data: b.Snapshot()})

	ws.SetReadLimit(maxMessageSize)
	for {
		var in clientIn
		if err := ws.ReadJSON(&in); err != nil {
			var ce *websocket.CloseError
			if !errors.As(err, &ce) {
				log.Debug("websocket read", zap.Error(err))
			}
			return
		}
		if err := s.dispatch(c, b, in); err != nil {
			log.Debug("websocket write", zap.Error(err))
			return
		}
	}
}

// dispatch runs one browser message against the battle.
func (s *Server) dispatch(c *conn, b *engine.Battle, in clientIn) error {
	var res types.Result
	switch in.Type {
	case "command":
		var cmd commandIn
		if err := json.Unmarshal(in.Data, &cmd); err != nil {
			return c.send(wsMsg{Type: "error", Data: "bad command: " + err.Error()})
		}
		res = b.Step(cmd.Text)
	case "select":
		var sel selectIn
		if err := json.Unmarshal(in.Data, &sel); err != nil {
			return c.send(wsMsg{Type: "error", Data: "bad selection: " + err.Error()})
		}
		switch sel.Role {
		case types.RoleAlly:
			res = b.SelectAlly(sel.Slot)
		case types.RoleEnemy:
			res = b.SelectEnemy(sel.Slot)
		default:
			return c.send(wsMsg{Type: "error", Data: "unknown role " + string(sel.Role)})
		}
	case "attack":
		res = b.Attack()
	case "mana":
		res = b.RestoreMana()
	case "heal":
		res = b.RestoreHealth()
	case "state":
		return c.send(wsMsg{Type: "state", Data: b.Snapshot()})
	default:
		return c.send(wsMsg{Type: "error", Data: "unknown message type " + in.Type})
	}
	return c.send(wsMsg{Type: "result", Data: resultOut{
		Action:   res.Action,
		Accepted: res.Accepted,
		Reason:   res.Reason,
		Output:   res.Output,
	}})
}

func rulesOut(r engine.Rules) map[string]any {
	return map[string]any{
		"attack_cost":    r.AttackCost,
		"mana_restore":   r.ManaRestore,
		"heal_fraction":  r.HealFraction,
		"enemy_delay_ms": r.EnemyDelay.Milliseconds(),
	}
}
