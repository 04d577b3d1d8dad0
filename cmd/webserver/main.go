package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/metrics"
	"github.com/trytobebee/gridsnake/pkg/server"
)

func main() {
	os.Exit(run())
}

// run owns every resource so its deferred cleanup runs before the exit code
// is handed to os.Exit
func run() int {
	config.LoadDotEnv()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Printf("❌ Invalid configuration: %v", err)
		return 1
	}

	store, err := game.OpenSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		log.Printf("❌ Failed to open database: %v", err)
		return 1
	}
	defer store.Close()
	log.Printf("💾 Database ready at %s", cfg.Storage.DBPath)

	settings, err := game.DefaultSettings(cfg.Game)
	if err != nil {
		log.Printf("❌ Invalid board: %v", err)
		return 1
	}

	hubCfg := server.HubConfig{Settings: settings, Store: store}
	if cfg.Storage.Record {
		hubCfg.RecordDir = cfg.Storage.RecordDir
	}
	hub := server.NewHub(hubCfg)
	defer hub.Close()

	metrics.StartDebugServer(cfg.Observability)

	router := server.NewRouter(server.RouterConfig{
		Hub:         hub,
		Store:       store,
		StaticDir:   cfg.Server.StaticDir,
		CORSOrigins: cfg.Server.CORSOrigins,
		ActionRate:  cfg.Server.ActionRate,
		ActionBurst: cfg.Server.ActionBurst,
		CellSize:    settings.CellSize,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("🚀 Snake Game Web Server starting on http://localhost%s\n", addr)
	fmt.Printf("📱 Open your browser and visit: http://localhost%s\n", addr)
	if err := serve(srv, quit); err != nil {
		log.Printf("❌ Server error: %v", err)
		return 1
	}
	return 0
}

// serve runs srv until a signal arrives on stop, then shuts it down.
// A listen failure is returned instead of exiting.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stop:
		log.Println("🛑 Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
