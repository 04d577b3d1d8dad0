package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trytobebee/gridsnake/pkg/game"
)

// ErrUnknownAction is returned for action names HandleAction does not know
var ErrUnknownAction = errors.New("unknown action")

// HandleAction applies a named action sent by a remote client
func HandleAction(s Session, action string) error {
	action = strings.ToLower(strings.TrimSpace(action))
	if dir, ok := game.ParseDirection(action); ok {
		s.RequestDirection(dir)
		return nil
	}

	switch action {
	case "start":
		s.Start()
	case "pause":
		s.Pause()
	case "resume":
		s.Resume()
	case "toggle":
		s.TogglePause()
	case "space":
		s.HandleSpace()
	case "reset", "restart":
		s.Reset()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}
