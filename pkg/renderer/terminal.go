package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// TerminalRenderer handles terminal-based rendering
type TerminalRenderer struct {
	board  [][]int
	buffer strings.Builder
	// ClearScreen emits ANSI clear codes before each frame
	ClearScreen bool
}

// Cell types for the board
const (
	cellEmpty = iota
	cellWall
	cellHead
	cellBody
	cellFood
	cellCrash
)

// NewTerminalRenderer creates a renderer for a width x height grid.
// The drawn board has a one-cell wall on every side.
func NewTerminalRenderer(width, height int) *TerminalRenderer {
	// Pre-allocate board to reduce GC pressure
	board := make([][]int, height+2)
	for i := range board {
		board[i] = make([]int, width+2)
	}

	return &TerminalRenderer{
		board:       board,
		ClearScreen: true,
	}
}

// ShowCursor shows the cursor (call on exit)
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// Render writes one frame to w
func (r *TerminalRenderer) Render(w io.Writer, s game.GameState) error {
	_, err := io.WriteString(w, r.Frame(s))
	return err
}

// Frame builds one frame as a string
func (r *TerminalRenderer) Frame(s game.GameState) string {
	r.buffer.Reset()
	if r.ClearScreen {
		r.buffer.WriteString("\033[H\033[2J\033[3J")
	}
	r.fill(s)

	r.buffer.WriteString("\n  🐍 SNAKE GAME 🐍\n")
	r.buffer.WriteString(fmt.Sprintf("  Score: %d  |  High Score: %d  |  Length: %d\n\n",
		s.Score, s.HighScore, len(s.Snake)))

	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			switch cell {
			case cellEmpty:
				r.buffer.WriteString(config.CharEmpty)
			case cellWall:
				r.buffer.WriteString(config.CharWall)
			case cellHead:
				r.buffer.WriteString(config.CharHead)
			case cellBody:
				r.buffer.WriteString(config.CharBody)
			case cellFood:
				r.buffer.WriteString(config.CharFood)
			case cellCrash:
				r.buffer.WriteString(config.CharCrash)
			}
		}
		r.buffer.WriteString("\n")
	}

	r.buffer.WriteString("\n  " + StatusText(s) + "\n")
	r.buffer.WriteString("  Arrow keys or WASD to move, SPACE to start/pause, R to reset, Q to quit\n")

	return r.buffer.String()
}

// fill paints the board; grid cell (x, y) lands at board[y+1][x+1]
func (r *TerminalRenderer) fill(s game.GameState) {
	height := len(r.board)
	for y := range r.board {
		width := len(r.board[y])
		for x := range r.board[y] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				r.board[y][x] = cellWall
			} else {
				r.board[y][x] = cellEmpty
			}
		}
	}

	set := func(p game.Point, cell int) {
		y, x := p.Y+1, p.X+1
		if y >= 0 && y < height && x >= 0 && x < len(r.board[y]) {
			r.board[y][x] = cell
		}
	}

	if s.State != game.Over || !s.Won {
		set(s.Food, cellFood)
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			set(s.Snake[i], cellHead)
		} else {
			set(s.Snake[i], cellBody)
		}
	}
	if s.CrashPoint != nil {
		set(*s.CrashPoint, cellCrash)
	}
}

// StatusText is the one-line status shown under the board
func StatusText(s game.GameState) string {
	switch s.State {
	case game.Running:
		return "Game Running"
	case game.Paused:
		return "⏸️  Game Paused - press SPACE to continue"
	case game.Over:
		if s.Won {
			return fmt.Sprintf("🏆 Board cleared! Final Score: %d", s.Score)
		}
		return fmt.Sprintf("💀 Game Over! Final Score: %d", s.Score)
	default:
		return "Press SPACE to start"
	}
}
