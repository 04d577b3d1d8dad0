package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/metrics"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

func main() {
	auto := flag.Bool("auto", false, "let the heuristic controller steer")
	flag.Parse()

	config.LoadDotEnv()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Keep log output off the game screen
	if logFile, err := os.OpenFile("snake.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	store, err := game.OpenSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer store.Close()

	settings, err := game.DefaultSettings(cfg.Game)
	if err != nil {
		log.Fatalf("❌ Invalid board: %v", err)
	}
	g, err := game.NewGame(settings, store, nil, game.NewTickerScheduler())
	if err != nil {
		log.Fatalf("❌ Failed to create game: %v", err)
	}
	sessionID := game.NewSessionID()
	g.SetSessionID(sessionID)

	metrics.StartDebugServer(cfg.Observability)
	metrics.Instrument(g)

	if *auto {
		game.AutoPlay(g, game.HeuristicController{})
	}

	g.OnGameOver(func(rec game.SessionRecord) {
		if err := store.RecordSession(rec); err != nil {
			log.Printf("⚠️  Failed to record session: %v", err)
		}
	})

	if cfg.Storage.Record {
		rec, err := game.NewRecorder(cfg.Storage.RecordDir, sessionID)
		if err != nil {
			log.Printf("⚠️  Recording disabled: %v", err)
		} else {
			rec.Attach(g)
			defer rec.Close()
			log.Printf("📼 Recording to %s", rec.Path())
		}
	}

	// Initialize input handler
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		fmt.Println("Error opening keyboard:", err)
		return
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer(settings.Grid.Width, settings.Grid.Height)
	renderer.HideCursor(os.Stdout)
	defer renderer.ShowCursor(os.Stdout)

	// Only the newest frame matters; older ones are replaced
	frames := make(chan game.GameState, 1)
	g.OnUpdate(func(s game.GameState) {
		select {
		case <-frames:
		default:
		}
		select {
		case frames <- s:
		default:
		}
	})

	render.Render(os.Stdout, g.Snapshot())

	inputs := inputHandler.Inputs()
	for {
		select {
		case in, ok := <-inputs:
			if !ok || !input.HandleKey(g, in) {
				g.Pause()
				fmt.Println("\n  Thanks for playing! 👋")
				return
			}
			// direction changes do not emit updates; redraw anyway
			render.Render(os.Stdout, g.Snapshot())

		case s := <-frames:
			render.Render(os.Stdout, s)
		}
	}
}
