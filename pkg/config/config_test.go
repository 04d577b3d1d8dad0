package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultGameIsClassicBoard(t *testing.T) {
	cfg := DefaultGame()
	if cfg.CanvasWidth/cfg.CellSize != 20 || cfg.CanvasHeight/cfg.CellSize != 20 {
		t.Errorf("Expected 20x20 cells, got %dx%d", cfg.CanvasWidth/cfg.CellSize, cfg.CanvasHeight/cfg.CellSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestGameFromEnv(t *testing.T) {
	t.Setenv("SNAKE_CELL_SIZE", "10")
	t.Setenv("SNAKE_TICK_MS", "50")
	t.Setenv("SNAKE_CANVAS_WIDTH", "not-a-number")

	cfg := GameFromEnv()
	if cfg.CellSize != 10 {
		t.Errorf("Expected cell size 10, got %d", cfg.CellSize)
	}
	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("Expected 50ms tick, got %v", cfg.TickInterval)
	}
	if cfg.CanvasWidth != CanvasWidth {
		t.Errorf("Expected bad width to fall back to %d, got %d", CanvasWidth, cfg.CanvasWidth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  GameConfig
		want error
	}{
		{"zero cell", GameConfig{CanvasWidth: 400, CanvasHeight: 400, CellSize: 0, TickInterval: time.Second}, ErrInvalidCellSize},
		{"tiny canvas", GameConfig{CanvasWidth: 10, CanvasHeight: 400, CellSize: 20, TickInterval: time.Second}, ErrCanvasTooSmall},
		{"zero tick", GameConfig{CanvasWidth: 400, CanvasHeight: 400, CellSize: 20}, ErrInvalidTick},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestObservabilityFromEnv(t *testing.T) {
	t.Setenv("DEBUG_ADDR", "off")
	if ObservabilityFromEnv().Enabled {
		t.Error("Expected DEBUG_ADDR=off to disable the debug server")
	}

	t.Setenv("DEBUG_ADDR", "127.0.0.1:7070")
	if cfg := ObservabilityFromEnv(); !cfg.Enabled || cfg.ListenAddr != "127.0.0.1:7070" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestStorageFromEnv(t *testing.T) {
	t.Setenv("SNAKE_DB_PATH", "/tmp/x.db")
	t.Setenv("SNAKE_RECORD", "true")

	cfg := StorageFromEnv()
	if cfg.DBPath != "/tmp/x.db" || !cfg.Record || cfg.RecordDir != DefaultRecordDir {
		t.Errorf("Unexpected storage config: %+v", cfg)
	}
}

func TestServerFromEnvOrigins(t *testing.T) {
	if got := DefaultServer().CORSOrigins; len(got) == 0 || got[0] == "*" {
		t.Errorf("Expected localhost-only default origins, got %v", got)
	}

	t.Setenv("SNAKE_CORS_ORIGINS", " https://a.test , ,http://localhost:*")
	got := ServerFromEnv().CORSOrigins
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "http://localhost:*" {
		t.Errorf("Unexpected origins: %v", got)
	}
}
