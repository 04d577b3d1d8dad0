package game

import (
	"fmt"
	"time"
)

// Point represents a cell on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is one of the four grid headings
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the 180° reverse of d
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the unit offset of one step in d
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("unknown direction %q", b)
	}
	*d = parsed
	return nil
}

// ParseDirection maps "up", "down", "left" or "right" to a Direction
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return 0, false
}

// AdvanceResult is the outcome of one movement attempt
type AdvanceResult int

const (
	Moved AdvanceResult = iota
	AteFood
	Collided
)

func (r AdvanceResult) String() string {
	switch r {
	case Moved:
		return "moved"
	case AteFood:
		return "ate_food"
	case Collided:
		return "collided"
	}
	return fmt.Sprintf("AdvanceResult(%d)", int(r))
}

func (r AdvanceResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *AdvanceResult) UnmarshalText(b []byte) error {
	switch string(b) {
	case "moved":
		*r = Moved
	case "ate_food":
		*r = AteFood
	case "collided":
		*r = Collided
	default:
		return fmt.Errorf("unknown advance result %q", b)
	}
	return nil
}

// SessionState is the lifecycle state of a game
type SessionState int

const (
	Idle SessionState = iota
	Running
	Paused
	Over
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Over:
		return "over"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SessionState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = Idle
	case "running":
		*s = Running
	case "paused":
		*s = Paused
	case "over":
		*s = Over
	default:
		return fmt.Errorf("unknown session state %q", b)
	}
	return nil
}

// Settings are the fixed rules of a session
type Settings struct {
	Grid         Grid
	CellSize     int // pixels, for renderers
	TickInterval time.Duration
	FoodReward   int
	StartSnake   []Point
	StartFacing  Direction
}

// GameState is a snapshot of the current game for rendering and client sync
type GameState struct {
	Snake      []Point       `json:"snake"`
	Food       Point         `json:"food"`
	Facing     Direction     `json:"facing"`
	Score      int           `json:"score"`
	HighScore  int           `json:"highScore"`
	State      SessionState  `json:"state"`
	Tick       uint64        `json:"tick"`
	LastResult AdvanceResult `json:"lastResult"`
	FoodEaten  int           `json:"foodEaten"`
	CrashPoint *Point        `json:"crashPoint,omitempty"`
	Won        bool          `json:"won,omitempty"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
}

// GameConfig is a DTO for board settings sent to a client on connect
type GameConfig struct {
	Width        int `json:"width"`
	Height       int `json:"height"`
	CellSize     int `json:"cellSize"`
	TickInterval int `json:"tickInterval"` // milliseconds
	FoodReward   int `json:"foodReward"`
}
