package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

var errNoScore = errors.New("no " + config.HighScoreKey + " entry")

// parseLegacyScore reads the high score out of a browser localStorage export,
// where values are usually strings: {"snakeHighScore": "120"}
func parseLegacyScore(data []byte) (int, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("parse export: %w", err)
	}
	raw, ok := entries[config.HighScoreKey]
	if !ok {
		return 0, errNoScore
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("%s is neither a number nor a string", config.HighScoreKey)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.HighScoreKey, err)
	}
	return n, nil
}

// migrate raises the stored high score to legacy when it is higher
func migrate(store game.HighScoreStore, legacy int) (bool, error) {
	current, err := store.HighScore()
	if err != nil {
		return false, err
	}
	if legacy <= current {
		return false, nil
	}
	return true, store.SetHighScore(legacy)
}

func main() {
	config.LoadDotEnv()
	storage := config.StorageFromEnv()

	file := flag.String("file", "localstorage.json", "localStorage export to import")
	dbPath := flag.String("db", storage.DBPath, "SQLite database path")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", *file, err)
	}
	legacy, err := parseLegacyScore(data)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	store, err := game.OpenSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("❌ Failed to open DB: %v", err)
	}
	defer store.Close()

	updated, err := migrate(store, legacy)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	if updated {
		fmt.Printf("✅ High score %d imported into %s\n", legacy, *dbPath)
	} else {
		fmt.Printf("💡 Stored high score is already at least %d, nothing to do\n", legacy)
	}
}
