package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/metrics"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 64
)

// originAllowed matches the request's Origin against patterns in the
// go-chi/cors style: "*" alone, or one "*" wildcard inside the pattern.
// Requests without an Origin header are not from a browser and pass.
func originAllowed(origins []string, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	origin = strings.ToLower(origin)
	for _, pattern := range origins {
		pattern = strings.ToLower(pattern)
		if pattern == "*" || pattern == origin {
			return true
		}
		if prefix, suffix, ok := strings.Cut(pattern, "*"); ok {
			if len(origin) >= len(prefix)+len(suffix) &&
				strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				return true
			}
		}
	}
	return false
}

func newUpgrader(origins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if originAllowed(origins, r) {
				return true
			}
			metrics.ConnectionRejected("origin")
			log.Printf("🚫 Websocket origin rejected: %s", r.Header.Get("Origin"))
			return false
		},
	}
}

// ServerMessage is sent to the browser: a "config" message once, then
// "state" messages after every change
type ServerMessage struct {
	Type    string           `json:"type"`
	Session string           `json:"session,omitempty"`
	Config  *game.GameConfig `json:"config,omitempty"`
	State   *game.GameState  `json:"state,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ClientMessage carries one player action
type ClientMessage struct {
	Action string `json:"action"`
}

type wsHandler struct {
	hub         *Hub
	upgrader    websocket.Upgrader
	actionRate  float64
	actionBurst int
}

func (h *wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	s, err := h.hub.Create()
	if err != nil {
		log.Printf("⚠️  Failed to create session: %v", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "cannot create game"))
		return
	}
	defer h.hub.Remove(s.ID)
	log.Printf("🔌 Session %s connected from %s", s.ID, r.RemoteAddr)

	send := make(chan ServerMessage, sendBuffer)
	done := make(chan struct{})
	defer close(done)

	// snapshots are complete, so a slow client just misses frames
	enqueue := func(msg ServerMessage) {
		select {
		case <-done:
		case send <- msg:
		default:
		}
	}

	cfg := s.Game.GetGameConfig()
	enqueue(ServerMessage{Type: "config", Session: s.ID, Config: &cfg})
	initial := s.Game.Snapshot()
	enqueue(ServerMessage{Type: "state", State: &initial})

	s.Game.OnUpdate(func(state game.GameState) {
		enqueue(ServerMessage{Type: "state", State: &state})
	})
	// ?auto=1 hands the steering to the heuristic controller
	if r.URL.Query().Get("auto") == "1" {
		game.AutoPlay(s.Game, game.HeuristicController{})
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case msg := <-send:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					log.Println("Write error:", err)
					conn.Close()
					return
				}
			}
		}
	}()

	limiter := rate.NewLimiter(rate.Limit(h.actionRate), h.actionBurst)
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("Read error:", err)
			}
			break
		}
		if !limiter.Allow() {
			metrics.ActionRejected()
			continue
		}
		if err := input.HandleAction(s.Game, msg.Action); err != nil {
			metrics.ActionRejected()
			enqueue(ServerMessage{Type: "error", Error: err.Error()})
		}
	}
	log.Printf("👋 Session %s disconnected", s.ID)
}
