package game

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

// ErrGridFull is returned when no free cell is left for food
var ErrGridFull = errors.New("no free cell left for food")

// Rand is the random source used to place food
type Rand interface {
	Intn(n int) int
}

// FoodSpawner places food on a free cell
type FoodSpawner struct {
	rng Rand
}

// NewFoodSpawner creates a spawner drawing from rng
func NewFoodSpawner(rng Rand) *FoodSpawner {
	return &FoodSpawner{rng: rng}
}

// NewRandomFoodSpawner creates a spawner seeded from the clock
func NewRandomFoodSpawner() *FoodSpawner {
	return NewFoodSpawner(rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
}

// Spawn draws uniformly over the board until it hits a cell not in occupied.
// Retries are unbounded as long as one free cell exists.
func (s *FoodSpawner) Spawn(occupied []Point, grid Grid) (Point, error) {
	taken := make(map[Point]struct{}, len(occupied))
	for _, p := range occupied {
		if grid.Contains(p) {
			taken[p] = struct{}{}
		}
	}
	if len(taken) >= grid.Cells() {
		return Point{}, ErrGridFull
	}

	for {
		pos := Point{
			X: s.rng.Intn(grid.Width),
			Y: s.rng.Intn(grid.Height),
		}
		if _, hit := taken[pos]; !hit {
			return pos, nil
		}
	}
}
