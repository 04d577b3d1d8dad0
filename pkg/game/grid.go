package game

import (
	"errors"
	"fmt"

	"github.com/trytobebee/gridsnake/pkg/config"
)

var ErrEmptyGrid = errors.New("grid has no cells")

// Grid is the board measured in cells
type Grid struct {
	Width  int
	Height int
}

// NewGrid converts pixel dimensions to a cell grid, flooring partial cells
func NewGrid(pixelWidth, pixelHeight, cellSize int) (Grid, error) {
	if cellSize <= 0 {
		return Grid{}, config.ErrInvalidCellSize
	}
	g := Grid{Width: pixelWidth / cellSize, Height: pixelHeight / cellSize}
	if g.Width < 1 || g.Height < 1 {
		return Grid{}, fmt.Errorf("%w: %dx%d px at cell size %d", ErrEmptyGrid, pixelWidth, pixelHeight, cellSize)
	}
	return g, nil
}

// Contains reports whether p lies on the board
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g Grid) MaxX() int { return g.Width - 1 }
func (g Grid) MaxY() int { return g.Height - 1 }

// Cells returns the number of cells on the board
func (g Grid) Cells() int {
	return g.Width * g.Height
}
