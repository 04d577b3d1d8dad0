package game

import (
	"reflect"
	"testing"
)

var grid20 = Grid{Width: 20, Height: 20}

func TestAdvanceMoves(t *testing.T) {
	s := NewSnake([]Point{{5, 10}, {4, 10}, {3, 10}}, Right)

	result := s.Advance(Right, Point{X: 10, Y: 10}, grid20)
	if result != Moved {
		t.Fatalf("Expected Moved, got %v", result)
	}
	want := []Point{{6, 10}, {5, 10}, {4, 10}}
	if got := s.Body(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected body %v, got %v", want, got)
	}
}

func TestAdvanceEatsAndGrows(t *testing.T) {
	s := NewSnake([]Point{{5, 10}, {4, 10}, {3, 10}}, Right)

	result := s.Advance(Right, Point{X: 6, Y: 10}, grid20)
	if result != AteFood {
		t.Fatalf("Expected AteFood, got %v", result)
	}
	want := []Point{{6, 10}, {5, 10}, {4, 10}, {3, 10}}
	if got := s.Body(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected body %v, got %v", want, got)
	}
}

func TestAdvanceWallCollisionLeavesBody(t *testing.T) {
	tests := []struct {
		name string
		body []Point
		dir  Direction
	}{
		{"left edge", []Point{{0, 10}, {1, 10}, {2, 10}}, Left},
		{"right edge", []Point{{19, 4}, {18, 4}, {17, 4}}, Right},
		{"top edge", []Point{{7, 0}, {7, 1}, {7, 2}}, Up},
		{"bottom edge", []Point{{7, 19}, {7, 18}, {7, 17}}, Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(tt.body, tt.dir)
			before := s.Body()
			if result := s.Advance(tt.dir, Point{X: 10, Y: 10}, grid20); result != Collided {
				t.Fatalf("Expected Collided, got %v", result)
			}
			if got := s.Body(); !reflect.DeepEqual(got, before) {
				t.Errorf("Body changed on collision: %v -> %v", before, got)
			}
		})
	}
}

// The tail has not moved yet when self collision is checked, so turning into
// the cell it is about to leave is fatal.
func TestAdvanceTailCellCountsAsBody(t *testing.T) {
	body := []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	s := NewSnake(body, Left)

	if result := s.Advance(Down, Point{X: 0, Y: 0}, grid20); result != Collided {
		t.Fatalf("Expected Collided moving into the tail cell, got %v", result)
	}
	if got := s.Body(); !reflect.DeepEqual(got, body) {
		t.Errorf("Body changed on collision: %v", got)
	}
	if s.Facing() != Left {
		t.Errorf("Facing changed on collision: %v", s.Facing())
	}
}

func TestAdvanceUpdatesFacing(t *testing.T) {
	s := NewSnake([]Point{{5, 10}, {4, 10}, {3, 10}}, Right)
	s.Advance(Up, Point{X: 0, Y: 0}, grid20)

	if s.Facing() != Up {
		t.Errorf("Expected facing up, got %v", s.Facing())
	}
	if s.Head() != (Point{X: 5, Y: 9}) {
		t.Errorf("Expected head (5,9), got %v", s.Head())
	}
}

func TestNewSnakeCopiesBody(t *testing.T) {
	body := []Point{{1, 1}, {0, 1}}
	s := NewSnake(body, Right)
	body[0] = Point{X: 9, Y: 9}

	if s.Head() != (Point{X: 1, Y: 1}) {
		t.Errorf("Snake shares caller's slice: head %v", s.Head())
	}
	got := s.Body()
	got[0] = Point{X: 7, Y: 7}
	if s.Head() != (Point{X: 1, Y: 1}) {
		t.Errorf("Body() exposes internal slice")
	}
}
