package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/trytobebee/gridsnake/pkg/config"
)

var (
	ErrInvalidReward = errors.New("food reward must be positive")
	ErrInvalidStart  = errors.New("invalid starting snake")
)

// TickObserver is told the outcome and duration of every applied tick
type TickObserver func(result AdvanceResult, took time.Duration)

// Game is one snake session. All methods are safe for concurrent use; the
// tick and the input handlers share a single lock.
type Game struct {
	mu sync.Mutex

	settings Settings
	store    HighScoreStore
	spawner  *FoodSpawner
	sched    Scheduler

	snake     *Snake
	direction *DirectionController
	food      Point
	score     int
	highScore int
	foodEaten int
	state     SessionState
	ticks     uint64
	last      AdvanceResult
	crash     *Point
	won       bool
	startTime time.Time
	endTime   time.Time

	// bumped whenever scheduled ticks must stop taking effect
	epoch uint64

	listeners []func(GameState)
	overHooks []func(SessionRecord)
	observer  TickObserver
	sessionID string
}

// DefaultSettings builds the classic board from cfg
func DefaultSettings(cfg config.GameConfig) (Settings, error) {
	grid, err := NewGrid(cfg.CanvasWidth, cfg.CanvasHeight, cfg.CellSize)
	if err != nil {
		return Settings{}, err
	}
	start := make([]Point, 0, config.StartLength)
	for i := 0; i < config.StartLength; i++ {
		start = append(start, Point{X: config.StartHeadX - i, Y: config.StartRow})
	}
	return Settings{
		Grid:         grid,
		CellSize:     cfg.CellSize,
		TickInterval: cfg.TickInterval,
		FoodReward:   cfg.FoodReward,
		StartSnake:   start,
		StartFacing:  Right,
	}, nil
}

func (s Settings) validate() error {
	if s.Grid.Width < 1 || s.Grid.Height < 1 {
		return ErrEmptyGrid
	}
	if s.TickInterval <= 0 {
		return config.ErrInvalidTick
	}
	if s.FoodReward <= 0 {
		return ErrInvalidReward
	}
	if len(s.StartSnake) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidStart)
	}
	if !s.StartFacing.Valid() {
		return fmt.Errorf("%w: facing %d", ErrInvalidStart, int(s.StartFacing))
	}
	seen := make(map[Point]bool, len(s.StartSnake))
	for _, p := range s.StartSnake {
		if !s.Grid.Contains(p) {
			return fmt.Errorf("%w: cell %v outside %dx%d", ErrInvalidStart, p, s.Grid.Width, s.Grid.Height)
		}
		if seen[p] {
			return fmt.Errorf("%w: cell %v repeated", ErrInvalidStart, p)
		}
		seen[p] = true
	}
	return nil
}

// NewGame creates an idle session. A nil store, spawner or scheduler falls
// back to memory, a clock-seeded spawner and a ticker respectively.
func NewGame(settings Settings, store HighScoreStore, spawner *FoodSpawner, sched Scheduler) (*Game, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if store == nil {
		store = NewMemoryStore(0)
	}
	if spawner == nil {
		spawner = NewRandomFoodSpawner()
	}
	if sched == nil {
		sched = NewTickerScheduler()
	}

	g := &Game{
		settings: settings,
		store:    store,
		spawner:  spawner,
		sched:    sched,
	}
	g.highScore = g.loadHighScore()
	if err := g.resetLocked(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadHighScore() int {
	hs, err := g.store.HighScore()
	if err != nil {
		log.Printf("⚠️  Failed to load high score: %v", err)
		return 0
	}
	if hs < 0 {
		return 0
	}
	return hs
}

// resetLocked restores the starting snake, direction, score and food
func (g *Game) resetLocked() error {
	snake := NewSnake(g.settings.StartSnake, g.settings.StartFacing)
	food, err := g.spawner.Spawn(snake.Body(), g.settings.Grid)
	if err != nil {
		return err
	}
	g.snake = snake
	g.direction = NewDirectionController(g.settings.StartFacing)
	g.food = food
	g.score = 0
	g.foodEaten = 0
	g.ticks = 0
	g.last = Moved
	g.crash = nil
	g.won = false
	g.state = Idle
	g.startTime = time.Time{}
	g.endTime = time.Time{}
	return nil
}

// SetSessionID tags records emitted by this game
func (g *Game) SetSessionID(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessionID = id
}

// OnUpdate registers fn to receive a snapshot after every state change
func (g *Game) OnUpdate(fn func(GameState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// OnGameOver registers fn to receive a summary when a game ends
func (g *Game) OnGameOver(fn func(SessionRecord)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.overHooks = append(g.overHooks, fn)
}

// SetTickObserver installs a hook for tick metrics
func (g *Game) SetTickObserver(fn TickObserver) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observer = fn
}

// Start begins ticking from Idle, or from Over after restoring defaults
func (g *Game) Start() {
	g.mu.Lock()
	switch g.state {
	case Idle:
	case Over:
		if err := g.resetLocked(); err != nil {
			log.Printf("⚠️  Failed to reset board: %v", err)
			g.mu.Unlock()
			return
		}
	default:
		g.mu.Unlock()
		return
	}
	g.state = Running
	g.startTime = time.Now()
	g.scheduleLocked()
	g.unlockAndNotify(nil)
}

// Pause stops ticking; no-op unless running
func (g *Game) Pause() {
	g.mu.Lock()
	if g.state != Running {
		g.mu.Unlock()
		return
	}
	g.state = Paused
	g.cancelTicksLocked()
	g.unlockAndNotify(nil)
}

// Resume restarts ticking; no-op unless paused
func (g *Game) Resume() {
	g.mu.Lock()
	if g.state != Paused {
		g.mu.Unlock()
		return
	}
	g.state = Running
	g.scheduleLocked()
	g.unlockAndNotify(nil)
}

// TogglePause toggles the pause state
func (g *Game) TogglePause() {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	switch state {
	case Running:
		g.Pause()
	case Paused:
		g.Resume()
	}
}

// HandleSpace starts an idle or finished game, otherwise toggles pause
func (g *Game) HandleSpace() {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	if state == Idle || state == Over {
		g.Start()
		return
	}
	g.TogglePause()
}

// Reset returns to Idle with a fresh board. The high score is kept.
func (g *Game) Reset() {
	g.mu.Lock()
	g.cancelTicksLocked()
	if stored := g.loadHighScore(); stored > g.highScore {
		g.highScore = stored
	}
	if err := g.resetLocked(); err != nil {
		log.Printf("⚠️  Failed to reset board: %v", err)
		g.mu.Unlock()
		return
	}
	g.unlockAndNotify(nil)
}

// RequestDirection queues a turn for the next tick. Reversals are dropped.
func (g *Game) RequestDirection(d Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.direction.RequestChange(d)
}

// Tick advances the game one step. The bool is false when the game was not
// running and nothing happened.
func (g *Game) Tick() (AdvanceResult, bool) {
	g.mu.Lock()
	return g.tickLocked()
}

func (g *Game) scheduledTick(epoch uint64) {
	g.mu.Lock()
	if epoch != g.epoch {
		g.mu.Unlock()
		return
	}
	g.tickLocked()
}

// tickLocked must be entered with the lock held; it releases it.
func (g *Game) tickLocked() (AdvanceResult, bool) {
	if g.state != Running {
		g.mu.Unlock()
		return Moved, false
	}
	began := time.Now()

	dir := g.direction.Commit()
	result := g.snake.Advance(dir, g.food, g.settings.Grid)
	g.ticks++
	g.last = result

	var over *SessionRecord
	switch result {
	case Collided:
		crash := g.snake.NextHead(dir)
		g.crash = &crash
		over = g.finishLocked()
	case AteFood:
		g.score += g.settings.FoodReward
		g.foodEaten++
		if g.score > g.highScore {
			g.highScore = g.score
			if err := g.store.SetHighScore(g.highScore); err != nil {
				log.Printf("⚠️  Failed to save high score: %v", err)
			}
		}
		food, err := g.spawner.Spawn(g.snake.Body(), g.settings.Grid)
		if err != nil {
			// board is full: nothing left to eat
			g.won = true
			over = g.finishLocked()
		} else {
			g.food = food
		}
	}

	observer := g.observer
	took := time.Since(began)
	g.unlockAndNotify(over)

	if observer != nil {
		observer(result, took)
	}
	return result, true
}

func (g *Game) finishLocked() *SessionRecord {
	g.state = Over
	g.endTime = time.Now()
	g.cancelTicksLocked()
	return &SessionRecord{
		SessionID: g.sessionID,
		StartTime: g.startTime,
		EndTime:   g.endTime,
		Score:     g.score,
		FoodEaten: g.foodEaten,
		Ticks:     g.ticks,
		Won:       g.won,
	}
}

func (g *Game) scheduleLocked() {
	g.epoch++
	epoch := g.epoch
	g.sched.Start(g.settings.TickInterval, func() { g.scheduledTick(epoch) })
}

func (g *Game) cancelTicksLocked() {
	g.epoch++
	g.sched.Stop()
}

// unlockAndNotify takes a snapshot, releases the lock and calls listeners
func (g *Game) unlockAndNotify(over *SessionRecord) {
	snap := g.snapshotLocked()
	listeners := append([]func(GameState){}, g.listeners...)
	var hooks []func(SessionRecord)
	if over != nil {
		hooks = append(hooks, g.overHooks...)
	}
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	for _, fn := range hooks {
		fn(*over)
	}
}

// Snapshot returns a copy of the current state for rendering
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() GameState {
	s := GameState{
		Snake:      g.snake.Body(),
		Food:       g.food,
		Facing:     g.snake.Facing(),
		Score:      g.score,
		HighScore:  g.highScore,
		State:      g.state,
		Tick:       g.ticks,
		LastResult: g.last,
		FoodEaten:  g.foodEaten,
		Won:        g.won,
		Width:      g.settings.Grid.Width,
		Height:     g.settings.Grid.Height,
	}
	if g.crash != nil {
		crash := *g.crash
		s.CrashPoint = &crash
	}
	return s
}

// State returns the session state
func (g *Game) State() SessionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Score returns the current score
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// HighScore returns the best score known to this session
func (g *Game) HighScore() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.highScore
}

// Settings returns the rules the session was built with
func (g *Game) Settings() Settings {
	return g.settings
}

// GetGameConfig returns the board configuration for clients
func (g *Game) GetGameConfig() GameConfig {
	return GameConfig{
		Width:        g.settings.Grid.Width,
		Height:       g.settings.Grid.Height,
		CellSize:     g.settings.CellSize,
		TickInterval: int(g.settings.TickInterval.Milliseconds()),
		FoodReward:   g.settings.FoodReward,
	}
}
