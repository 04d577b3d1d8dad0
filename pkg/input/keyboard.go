package input

import (
	"github.com/eiannone/keyboard"

	"github.com/trytobebee/gridsnake/pkg/game"
)

// KeyInput is one key press: a printable rune or a special key
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// KeyboardHandler turns raw terminal key events into KeyInput values
type KeyboardHandler struct {
	inputs chan KeyInput
}

func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{inputs: make(chan KeyInput, 16)}
}

// Start puts the terminal in raw mode and begins forwarding key presses
func (h *KeyboardHandler) Start() error {
	events, err := keyboard.GetKeys(16)
	if err != nil {
		return err
	}
	go forward(events, h.inputs)
	return nil
}

// Stop restores the terminal
func (h *KeyboardHandler) Stop() {
	keyboard.Close()
}

// Inputs delivers key presses until the keyboard fails or is closed
func (h *KeyboardHandler) Inputs() <-chan KeyInput {
	return h.inputs
}

// forward copies events to out and closes out on the first read error
func forward(events <-chan keyboard.KeyEvent, out chan<- KeyInput) {
	defer close(out)
	for ev := range events {
		if ev.Err != nil {
			return
		}
		out <- KeyInput{Char: ev.Rune, Key: ev.Key}
	}
}

// ParseDirection parses a key input into a direction
func ParseDirection(input KeyInput) (game.Direction, bool) {
	// Handle arrow keys
	switch input.Key {
	case keyboard.KeyArrowUp:
		return game.Up, true
	case keyboard.KeyArrowDown:
		return game.Down, true
	case keyboard.KeyArrowLeft:
		return game.Left, true
	case keyboard.KeyArrowRight:
		return game.Right, true
	}

	// Handle WASD keys
	switch input.Char {
	case 'w', 'W':
		return game.Up, true
	case 's', 'S':
		return game.Down, true
	case 'a', 'A':
		return game.Left, true
	case 'd', 'D':
		return game.Right, true
	}

	return 0, false
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Char == 'q' || input.Char == 'Q' || input.Key == keyboard.KeyEsc || input.Key == keyboard.KeyCtrlC
}

// IsRestart checks if the input is a restart command
func IsRestart(input KeyInput) bool {
	return input.Char == 'r' || input.Char == 'R'
}

// IsSpace checks if the input is the start/pause key
func IsSpace(input KeyInput) bool {
	return input.Char == ' ' || input.Key == keyboard.KeySpace
}

// Session is the part of a game that player input drives
type Session interface {
	RequestDirection(d game.Direction) bool
	HandleSpace()
	Reset()
	Start()
	Pause()
	Resume()
	TogglePause()
}

// HandleKey applies one key press to s. It returns false when the player
// asked to quit.
func HandleKey(s Session, input KeyInput) bool {
	switch {
	case IsQuit(input):
		return false
	case IsSpace(input):
		s.HandleSpace()
	case IsRestart(input):
		s.Reset()
	case input.Char == 'p' || input.Char == 'P':
		s.TogglePause()
	default:
		if dir, ok := ParseDirection(input); ok {
			s.RequestDirection(dir)
		}
	}
	return true
}
