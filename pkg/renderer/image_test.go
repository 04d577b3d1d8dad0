package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/trytobebee/gridsnake/pkg/game"
)

func TestEyePositions(t *testing.T) {
	head := game.Point{X: 5, Y: 10}
	tests := []struct {
		facing game.Direction
		want   [2]image.Point
	}{
		{game.Up, [2]image.Point{{104, 204}, {112, 204}}},
		{game.Down, [2]image.Point{{104, 212}, {112, 212}}},
		{game.Left, [2]image.Point{{104, 204}, {104, 212}}},
		{game.Right, [2]image.Point{{112, 204}, {112, 212}}},
	}
	for _, tt := range tests {
		if got := EyePositions(head, tt.facing, 20); got != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.facing, tt.want, got)
		}
	}
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestDrawColors(t *testing.T) {
	r := NewImageRenderer(20)
	img := r.Draw(sampleState())

	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Fatalf("Expected 400x400 image, got %v", b)
	}
	if got := rgba(img.At(101, 201)); got != colorHead {
		t.Errorf("Expected head color at head cell, got %v", got)
	}
	if got := rgba(img.At(81, 201)); got != colorBody {
		t.Errorf("Expected body color at body cell, got %v", got)
	}
	if got := rgba(img.At(113, 205)); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected black eye, got %v", got)
	}
	if got := rgba(img.At(210, 210)); got != colorFood {
		t.Errorf("Expected food color at food center, got %v", got)
	}
	if got := rgba(img.At(300, 50)); got != colorBackground {
		t.Errorf("Expected background, got %v", got)
	}
}

func TestDrawGameOverDims(t *testing.T) {
	s := sampleState()
	s.State = game.Over
	img := NewImageRenderer(20).Draw(s)

	if got := rgba(img.At(300, 50)); got == colorBackground {
		t.Error("Expected overlay over the background when the game is over")
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := NewImageRenderer(10).RenderPNG(&buf, sampleState()); err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("Expected 200x200, got %v", b)
	}
}

func TestDrawWithMissingFontIsConcurrencySafe(t *testing.T) {
	r := NewImageRenderer(10)
	r.FontPath = "does/not/exist.ttf"
	s := sampleState()
	s.State = game.Over

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			if err := r.RenderPNG(&buf, s); err != nil {
				t.Errorf("RenderPNG failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if r.FontPath != "does/not/exist.ttf" {
		t.Errorf("Rendering changed FontPath to %q", r.FontPath)
	}
}
