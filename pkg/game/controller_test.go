package game

import (
	"testing"
)

func TestHeuristicTurnsTowardFood(t *testing.T) {
	s := GameState{
		Snake:  []Point{{X: 5, Y: 10}, {X: 4, Y: 10}, {X: 3, Y: 10}},
		Food:   Point{X: 5, Y: 2},
		Facing: Right,
		Width:  20,
		Height: 20,
	}
	if got := (HeuristicController{}).NextDirection(s); got != Up {
		t.Errorf("Expected Up toward food, got %v", got)
	}
}

func TestHeuristicAvoidsWall(t *testing.T) {
	s := GameState{
		Snake:  []Point{{X: 19, Y: 5}, {X: 18, Y: 5}, {X: 17, Y: 5}},
		Food:   Point{X: 19, Y: 15},
		Facing: Right,
		Width:  20,
		Height: 20,
	}
	if got := (HeuristicController{}).NextDirection(s); got != Down {
		t.Errorf("Expected Down along the wall, got %v", got)
	}
}

func TestHeuristicNeverReverses(t *testing.T) {
	s := GameState{
		Snake:  []Point{{X: 5, Y: 10}, {X: 6, Y: 10}, {X: 7, Y: 10}},
		Food:   Point{X: 15, Y: 10},
		Facing: Left,
		Width:  20,
		Height: 20,
	}
	if got := (HeuristicController{}).NextDirection(s); got == Right {
		t.Error("Controller chose a reversal")
	}
}

func TestAutoPlayEats(t *testing.T) {
	g, sched := newTestGame(t, classicSettings(t), nil)
	AutoPlay(g, HeuristicController{})

	// remember the board each decision was made on
	var prev, crashedFrom GameState
	crashed := false
	g.OnUpdate(func(s GameState) {
		if s.State == Over && s.LastResult == Collided {
			crashed = true
			crashedFrom = prev
		}
		prev = s
	})

	g.Start()
	for i := 0; i < 3000 && g.State() == Running; i++ {
		sched.Fire()
	}

	s := g.Snapshot()
	if s.FoodEaten < 3 {
		t.Errorf("Expected autopilot to eat at least 3 foods, got %d (state %v)", s.FoodEaten, s.State)
	}
	if crashed {
		if free := safeMoves(crashedFrom); len(free) > 0 {
			t.Errorf("Autopilot crashed at tick %d with safe moves %v available", s.Tick, free)
		}
	}
}

// safeMoves lists the headings that do not collide on the next tick
func safeMoves(s GameState) []Direction {
	grid := Grid{Width: s.Width, Height: s.Height}
	snake := NewSnake(s.Snake, s.Facing)
	var free []Direction
	for _, d := range allDirections {
		if d == s.Facing.Opposite() {
			continue
		}
		next := snake.NextHead(d)
		if grid.Contains(next) && !snake.Occupies(next) {
			free = append(free, d)
		}
	}
	return free
}

func TestHeuristicAvoidsTailCell(t *testing.T) {
	// square body: the tail sits right below the head
	s := GameState{
		Snake:  []Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}},
		Food:   Point{X: 5, Y: 7},
		Facing: Left,
		Width:  20,
		Height: 20,
	}
	got := (HeuristicController{}).NextDirection(s)
	if got == Down {
		t.Fatal("Controller steered into its own tail cell")
	}

	snake := NewSnake(s.Snake, s.Facing)
	if res := snake.Advance(got, s.Food, Grid{Width: 20, Height: 20}); res == Collided {
		t.Errorf("Controller choice %v collided", got)
	}
}

func TestHeuristicChoicesNeverCollideWhenAvoidable(t *testing.T) {
	tests := []struct {
		body   []Point
		facing Direction
	}{
		{[]Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}, Left},
		{[]Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}, Left},
		{[]Point{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 3}, {X: 4, Y: 2}}, Up},
	}
	for _, tt := range tests {
		body, facing := tt.body, tt.facing
		s := GameState{Snake: body, Food: Point{X: 10, Y: 10}, Facing: facing, Width: 20, Height: 20}
		free := safeMoves(s)
		got := (HeuristicController{}).NextDirection(s)

		snake := NewSnake(body, facing)
		res := snake.Advance(got, s.Food, Grid{Width: 20, Height: 20})
		if res == Collided && len(free) > 0 {
			t.Errorf("body %v: chose %v and collided while %v were free", body, got, free)
		}
	}
}
