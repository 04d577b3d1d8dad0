package server

import (
	"log"
	"sync"

	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/metrics"
)

// Store persists the high score and finished sessions
type Store interface {
	game.HighScoreStore
	RecordSession(rec game.SessionRecord) error
	RecentSessions(limit int) ([]game.SessionRecord, error)
}

// Session is one connected player and the game they drive
type Session struct {
	ID   string
	Game *game.Game

	recorder *game.GameRecorder
}

// HubConfig configures how sessions are created
type HubConfig struct {
	Settings game.Settings
	Store    Store
	// RecordDir enables JSONL recording of every session when set
	RecordDir string
	// NewScheduler overrides the ticker used by new games
	NewScheduler func() game.Scheduler
}

// Hub owns the live sessions, keyed by session ID
type Hub struct {
	cfg HubConfig

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub(cfg HubConfig) *Hub {
	if cfg.NewScheduler == nil {
		cfg.NewScheduler = func() game.Scheduler { return game.NewTickerScheduler() }
	}
	return &Hub{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new idle session
func (h *Hub) Create() (*Session, error) {
	var store game.HighScoreStore
	if h.cfg.Store != nil {
		store = h.cfg.Store
	}
	g, err := game.NewGame(h.cfg.Settings, store, nil, h.cfg.NewScheduler())
	if err != nil {
		return nil, err
	}

	s := &Session{ID: game.NewSessionID(), Game: g}
	g.SetSessionID(s.ID)
	metrics.Instrument(g)

	if h.cfg.Store != nil {
		g.OnGameOver(func(rec game.SessionRecord) {
			if err := h.cfg.Store.RecordSession(rec); err != nil {
				log.Printf("⚠️  Failed to record session %s: %v", rec.SessionID, err)
			}
		})
	}
	if h.cfg.RecordDir != "" {
		rec, err := game.NewRecorder(h.cfg.RecordDir, s.ID)
		if err != nil {
			log.Printf("⚠️  Recording disabled for %s: %v", s.ID, err)
		} else {
			rec.Attach(g)
			s.recorder = rec
		}
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	metrics.SessionOpened()
	return s, nil
}

// Get returns the session with the given ID
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Remove stops the session's ticks and forgets it
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return
	}

	s.Game.Pause()
	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			log.Printf("⚠️  Failed to close recording for %s: %v", id, err)
		}
	}
	metrics.SessionClosed()
}

// Len returns the number of live sessions
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close removes every session
func (h *Hub) Close() {
	h.mu.RLock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.Remove(id)
	}
}
