package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/trytobebee/gridsnake/pkg/game"
)

var (
	colorBackground = color.RGBA{10, 42, 18, 255}  // #0a2a12
	colorHead       = color.RGBA{76, 175, 80, 255} // #4CAF50
	colorBody       = color.RGBA{139, 195, 74, 255}
	colorFood       = color.RGBA{255, 82, 82, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 178}
)

// ImageRenderer draws snapshots the way the browser canvas does
type ImageRenderer struct {
	CellSize int
	// FontPath is an optional TTF used for the game-over text
	FontPath string
}

func NewImageRenderer(cellSize int) *ImageRenderer {
	return &ImageRenderer{CellSize: cellSize}
}

// EyePositions returns the top-left corners of the two 4px eyes for a head
// cell facing the given direction
func EyePositions(head game.Point, facing game.Direction, cellSize int) [2]image.Point {
	x, y := head.X*cellSize, head.Y*cellSize
	near, far := 4, cellSize-8

	switch facing {
	case game.Up:
		return [2]image.Point{{x + near, y + near}, {x + far, y + near}}
	case game.Down:
		return [2]image.Point{{x + near, y + far}, {x + far, y + far}}
	case game.Left:
		return [2]image.Point{{x + near, y + near}, {x + near, y + far}}
	default:
		return [2]image.Point{{x + far, y + near}, {x + far, y + far}}
	}
}

// Draw renders s into a new image
func (r *ImageRenderer) Draw(s game.GameState) image.Image {
	return r.context(s).Image()
}

// RenderPNG encodes the snapshot as a PNG
func (r *ImageRenderer) RenderPNG(w io.Writer, s game.GameState) error {
	return r.context(s).EncodePNG(w)
}

func (r *ImageRenderer) context(s game.GameState) *gg.Context {
	cs := float64(r.CellSize)
	w, h := s.Width*r.CellSize, s.Height*r.CellSize
	dc := gg.NewContext(w, h)

	dc.SetColor(colorBackground)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	for i, seg := range s.Snake {
		if i == 0 {
			dc.SetColor(colorHead)
		} else {
			dc.SetColor(colorBody)
		}
		dc.DrawRectangle(float64(seg.X)*cs, float64(seg.Y)*cs, cs-1, cs-1)
		dc.Fill()
	}
	if len(s.Snake) > 0 {
		dc.SetColor(color.Black)
		for _, eye := range EyePositions(s.Snake[0], s.Facing, r.CellSize) {
			dc.DrawRectangle(float64(eye.X), float64(eye.Y), 4, 4)
			dc.Fill()
		}
	}

	if !s.Won {
		dc.SetColor(colorFood)
		dc.DrawArc(float64(s.Food.X)*cs+cs/2, float64(s.Food.Y)*cs+cs/2, cs/2-1, 0, 2*math.Pi)
		dc.Fill()
	}

	if s.State == game.Over {
		r.drawGameOver(dc, s, float64(w), float64(h))
	}

	return dc
}

func (r *ImageRenderer) drawGameOver(dc *gg.Context, s game.GameState, w, h float64) {
	dc.SetColor(colorOverlay)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(color.White)
	// the renderer is shared between requests; a bad font only affects this frame
	font := r.FontPath
	if font != "" {
		if err := dc.LoadFontFace(font, 30); err != nil {
			font = ""
		}
	}
	title := "GAME OVER"
	if s.Won {
		title = "YOU WIN"
	}
	dc.DrawStringAnchored(title, w/2, h/2-20, 0.5, 0.5)

	if font != "" {
		_ = dc.LoadFontFace(font, 20)
	}
	dc.DrawStringAnchored(fmt.Sprintf("Score: %d", s.Score), w/2, h/2+20, 0.5, 0.5)
}
