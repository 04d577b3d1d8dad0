package game

// Snake owns the body, head first
type Snake struct {
	body   []Point
	facing Direction
}

// NewSnake copies body; index 0 is the head
func NewSnake(body []Point, facing Direction) *Snake {
	b := make([]Point, len(body))
	copy(b, body)
	return &Snake{body: b, facing: facing}
}

// NextHead returns the cell the head would enter moving in dir
func (s *Snake) NextHead(dir Direction) Point {
	return s.body[0].Add(dir.Delta())
}

// Advance moves the snake one cell. Self collision is tested against the body
// before the tail is dropped, so the cell the tail is about to leave counts.
// Nothing changes on Collided.
func (s *Snake) Advance(dir Direction, food Point, grid Grid) AdvanceResult {
	newHead := s.NextHead(dir)

	if !grid.Contains(newHead) {
		return Collided
	}
	if s.Occupies(newHead) {
		return Collided
	}

	s.body = append([]Point{newHead}, s.body...)
	s.facing = dir

	if newHead == food {
		return AteFood
	}
	s.body = s.body[:len(s.body)-1]
	return Moved
}

// Occupies reports whether p is part of the body
func (s *Snake) Occupies(p Point) bool {
	for _, c := range s.body {
		if c == p {
			return true
		}
	}
	return false
}

func (s *Snake) Head() Point       { return s.body[0] }
func (s *Snake) Len() int          { return len(s.body) }
func (s *Snake) Facing() Direction { return s.facing }

// Body returns a copy of the cells, head first
func (s *Snake) Body() []Point {
	b := make([]Point, len(s.body))
	copy(b, s.body)
	return b
}
