package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Board geometry in canvas pixels
const (
	CanvasWidth  = 400
	CanvasHeight = 400
	CellSize     = 20 // 400 / 20 = 20x20 cells
)

// Game rules
const (
	TickInterval = 200 * time.Millisecond
	FoodReward   = 10
	StartRow     = 10
	StartLength  = 3
	StartHeadX   = 5
)

// Storage and recording defaults
const (
	DefaultDBPath    = "data/game.db"
	DefaultRecordDir = "records"
	HighScoreKey     = "snakeHighScore"
)

// Emoji characters for rendering
const (
	CharEmpty = "  " // Two spaces to match emoji width
	CharWall  = "⬜"
	CharHead  = "🟢"
	CharBody  = "🟩"
	CharFood  = "🔴"
	CharCrash = "💥"
)

var (
	ErrInvalidCellSize = errors.New("cell size must be positive")
	ErrCanvasTooSmall  = errors.New("canvas smaller than one cell")
	ErrInvalidTick     = errors.New("tick interval must be positive")
)

// GameConfig holds the board and rule settings.
type GameConfig struct {
	CanvasWidth  int
	CanvasHeight int
	CellSize     int
	TickInterval time.Duration
	FoodReward   int
}

// DefaultGame returns the settings of the classic 20x20 board.
func DefaultGame() GameConfig {
	return GameConfig{
		CanvasWidth:  CanvasWidth,
		CanvasHeight: CanvasHeight,
		CellSize:     CellSize,
		TickInterval: TickInterval,
		FoodReward:   FoodReward,
	}
}

// GameFromEnv returns game settings with environment variable overrides.
func GameFromEnv() GameConfig {
	cfg := DefaultGame()

	if v := getEnvInt("SNAKE_CANVAS_WIDTH", 0); v > 0 {
		cfg.CanvasWidth = v
	}
	if v := getEnvInt("SNAKE_CANVAS_HEIGHT", 0); v > 0 {
		cfg.CanvasHeight = v
	}
	if v := getEnvInt("SNAKE_CELL_SIZE", 0); v > 0 {
		cfg.CellSize = v
	}
	if v := getEnvInt("SNAKE_TICK_MS", 0); v > 0 {
		cfg.TickInterval = time.Duration(v) * time.Millisecond
	}

	return cfg
}

// Validate rejects geometry that cannot produce a playable board.
func (c GameConfig) Validate() error {
	if c.CellSize <= 0 {
		return ErrInvalidCellSize
	}
	if c.CanvasWidth < c.CellSize || c.CanvasHeight < c.CellSize {
		return fmt.Errorf("%w: %dx%d with cell %d", ErrCanvasTooSmall, c.CanvasWidth, c.CanvasHeight, c.CellSize)
	}
	if c.TickInterval <= 0 {
		return ErrInvalidTick
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int
	StaticDir   string
	CORSOrigins []string
	// Client actions per second allowed on one websocket
	ActionRate  float64
	ActionBurst int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:        8080,
		StaticDir:   "web/static",
		CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		ActionRate:  30,
		ActionBurst: 10,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if dir := os.Getenv("SNAKE_STATIC_DIR"); dir != "" {
		cfg.StaticDir = dir
	}
	// comma separated, e.g. "https://snake.example.org,http://localhost:*"
	if origins := os.Getenv("SNAKE_CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DBPath    string
	RecordDir string
	Record    bool
}

// StorageFromEnv returns storage configuration with environment variable overrides.
func StorageFromEnv() StorageConfig {
	cfg := StorageConfig{
		DBPath:    DefaultDBPath,
		RecordDir: DefaultRecordDir,
	}

	if p := os.Getenv("SNAKE_DB_PATH"); p != "" {
		cfg.DBPath = p
	}
	if d := os.Getenv("SNAKE_RECORD_DIR"); d != "" {
		cfg.RecordDir = d
	}
	cfg.Record = os.Getenv("SNAKE_RECORD") == "true"

	return cfg
}

// ObservabilityConfig configures the debug server.
type ObservabilityConfig struct {
	Enabled    bool
	ListenAddr string
}

// ObservabilityFromEnv returns debug server settings. DEBUG_ADDR=off disables it.
func ObservabilityFromEnv() ObservabilityConfig {
	cfg := ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
	switch addr := os.Getenv("DEBUG_ADDR"); addr {
	case "":
	case "off":
		cfg.Enabled = false
	default:
		cfg.ListenAddr = addr
	}
	return cfg
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Game          GameConfig
	Server        ServerConfig
	Storage       StorageConfig
	Observability ObservabilityConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Game:          GameFromEnv(),
		Server:        ServerFromEnv(),
		Storage:       StorageFromEnv(),
		Observability: ObservabilityFromEnv(),
	}
}

// Validate checks every section that can be wrong at startup.
func (c AppConfig) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("game config: %w", err)
	}
	return nil
}

// LoadDotEnv loads .env from the parent or current directory if present.
func LoadDotEnv() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
			return
		}
		log.Println("✅ Loaded environment from .env")
		return
	}
	log.Println("✅ Loaded environment from ../.env")
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
