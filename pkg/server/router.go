package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/trytobebee/gridsnake/pkg/renderer"
)

// RouterConfig holds everything the HTTP router needs
type RouterConfig struct {
	Hub   *Hub
	Store Store

	StaticDir   string
	CORSOrigins []string
	// Client actions per second allowed on one websocket
	ActionRate  float64
	ActionBurst int
	// CellSize is the pixel size used for PNG frames
	CellSize int

	DisableLogging bool
}

type handlers struct {
	hub   *Hub
	store Store
	image *renderer.ImageRenderer
}

// NewRouter builds the router. It starts no goroutines, so it can be
// served by httptest directly.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	rate, burst := cfg.ActionRate, cfg.ActionBurst
	if rate <= 0 {
		rate = 30
	}
	if burst <= 0 {
		burst = 10
	}
	cellSize := cfg.CellSize
	if cellSize <= 0 {
		cellSize = 20
	}

	h := &handlers{
		hub:   cfg.Hub,
		store: cfg.Store,
		image: renderer.NewImageRenderer(cellSize),
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/ws", &wsHandler{
		hub:         cfg.Hub,
		upgrader:    newUpgrader(origins),
		actionRate:  rate,
		actionBurst: burst,
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/highscore", h.handleHighScore)
		r.Get("/history", h.handleHistory)
		r.Get("/sessions/{id}/state", h.handleSessionState)
		r.Get("/sessions/{id}/frame.png", h.handleSessionFrame)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *handlers) handleHighScore(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, map[string]int{"highScore": 0})
		return
	}
	hs, err := h.store.HighScore()
	if err != nil {
		http.Error(w, "failed to read high score", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"highScore": hs})
}

func (h *handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if h.store == nil {
		writeJSON(w, http.StatusOK, []interface{}{})
		return
	}
	recs, err := h.store.RecentSessions(limit)
	if err != nil {
		http.Error(w, "failed to read history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *handlers) handleSessionState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.hub.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.Game.Snapshot())
}

func (h *handlers) handleSessionFrame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.hub.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.image.RenderPNG(w, s.Game.Snapshot()); err != nil {
		http.Error(w, "failed to render frame", http.StatusInternalServerError)
	}
}
