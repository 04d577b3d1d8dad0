package metrics

import (
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// Labels are bounded: results are "moved", "ate_food" or "collided"
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snake_tick_duration_seconds",
		Help:    "Time spent in one game tick",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05},
	})

	ticksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_ticks_total",
		Help: "Ticks processed, by result",
	}, []string{"result"})

	foodEaten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snake_food_eaten_total",
		Help: "Food items eaten across all games",
	})

	gamesOver = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_games_over_total",
		Help: "Finished games, by outcome",
	}, []string{"outcome"}) // "crashed", "won"

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "snake_sessions_active",
		Help: "Currently connected websocket sessions",
	})

	connectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_connections_rejected_total",
		Help: "Websocket upgrades refused",
	}, []string{"reason"}) // "origin"

	actionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snake_actions_rejected_total",
		Help: "Client actions dropped by the rate limiter or as unknown",
	})
)

// ObserveTick records one tick; it matches game.TickObserver
func ObserveTick(result game.AdvanceResult, took time.Duration) {
	tickDuration.Observe(took.Seconds())
	ticksTotal.WithLabelValues(result.String()).Inc()
	if result == game.AteFood {
		foodEaten.Inc()
	}
}

// ObserveGameOver counts a finished game
func ObserveGameOver(rec game.SessionRecord) {
	outcome := "crashed"
	if rec.Won {
		outcome = "won"
	}
	gamesOver.WithLabelValues(outcome).Inc()
}

// Instrument wires a game's tick and game-over events into the metrics
func Instrument(g *game.Game) {
	g.SetTickObserver(ObserveTick)
	g.OnGameOver(ObserveGameOver)
}

func SessionOpened() { sessionsActive.Inc() }
func SessionClosed() { sessionsActive.Dec() }

func ActionRejected() { actionsRejected.Inc() }

// ConnectionRejected counts a refused upgrade; reason must be a fixed string
func ConnectionRejected(reason string) { connectionsRejected.WithLabelValues(reason).Inc() }

// DebugHandler serves /metrics, /health and pprof
func DebugHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// isLoopback reports whether addr binds to the local machine only
func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// StartDebugServer starts the observability server in the background.
// Non-loopback addresses are rewritten to 127.0.0.1 on the same port.
func StartDebugServer(cfg config.ObservabilityConfig) {
	if !cfg.Enabled {
		log.Println("📊 Debug server disabled")
		return
	}

	if !isLoopback(cfg.ListenAddr) {
		_, port, err := net.SplitHostPort(cfg.ListenAddr)
		if err != nil {
			port = "6060"
		}
		log.Println("⚠️ Debug server forced to localhost")
		cfg.ListenAddr = net.JoinHostPort("127.0.0.1", port)
	}

	go func() {
		log.Printf("📊 Debug server starting on %s", cfg.ListenAddr)
		log.Printf("   - metrics: http://%s/metrics", cfg.ListenAddr)

		if err := http.ListenAndServe(cfg.ListenAddr, DebugHandler()); err != nil {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()
}
