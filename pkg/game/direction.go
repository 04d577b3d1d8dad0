package game

// DirectionController buffers the next heading between ticks
type DirectionController struct {
	committed Direction
	pending   Direction
}

// NewDirectionController starts both slots at start
func NewDirectionController(start Direction) *DirectionController {
	return &DirectionController{committed: start, pending: start}
}

// RequestChange sets the pending direction unless it reverses the committed one.
// Requests are checked against the committed slot only, so the last accepted
// request before a tick wins.
func (c *DirectionController) RequestChange(d Direction) bool {
	if !d.Valid() || d == c.committed.Opposite() {
		return false
	}
	c.pending = d
	return true
}

// Commit latches the pending direction for this tick
func (c *DirectionController) Commit() Direction {
	c.committed = c.pending
	return c.committed
}

func (c *DirectionController) Committed() Direction { return c.committed }
func (c *DirectionController) Pending() Direction   { return c.pending }
