package collisions

import (
	"fmt"

	"github.com/solarlune/resolv"
)

const (
	// CollisionSpaceTagCard tags the objects that cover a card face.
	CollisionSpaceTagCard = "card"
	// CollisionSpaceTagPointer tags the probe that follows the cursor.
	CollisionSpaceTagPointer = "pointer"

	cellSize = 8
)

// Rect is an axis aligned rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// CardLayout places a rows by cols grid of cards on the screen and answers
// which card lies under a point.
type CardLayout struct {
	// space holds one object per card plus the pointer probe.
	space *resolv.Space
	// probe is a 1x1 object moved to the queried point.
	probe *resolv.Object
	// rects are the card rectangles by card index.
	rects  []Rect
	rows   int
	cols   int
	width  float64
	height float64
}

type CardLayoutOptions struct {
	// Width is the width of the area the grid is laid out in.
	Width float64
	// Height is the height of the area the grid is laid out in.
	Height float64
	// Top is the space reserved above the grid, for the header.
	Top float64
	// Margin is the space around the grid.
	Margin float64
	// Gap is the space between neighbouring cards.
	Gap float64
	// Rows is the number of card rows.
	Rows int
	// Cols is the number of card columns.
	Cols int
}

func NewCardLayout(opts CardLayoutOptions) (*CardLayout, error) {
	if opts.Rows <= 0 || opts.Cols <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", opts.Rows, opts.Cols)
	}
	cardW := (opts.Width - 2*opts.Margin - float64(opts.Cols-1)*opts.Gap) / float64(opts.Cols)
	cardH := (opts.Height - opts.Top - 2*opts.Margin - float64(opts.Rows-1)*opts.Gap) / float64(opts.Rows)
	if cardW <= 0 || cardH <= 0 {
		return nil, fmt.Errorf("area %.0fx%.0f too small for a %dx%d grid", opts.Width, opts.Height, opts.Rows, opts.Cols)
	}

	space := resolv.NewSpace(int(opts.Width)+cellSize, int(opts.Height)+cellSize, cellSize, cellSize)
	layout := &CardLayout{
		space:  space,
		rects:  make([]Rect, 0, opts.Rows*opts.Cols),
		rows:   opts.Rows,
		cols:   opts.Cols,
		width:  opts.Width,
		height: opts.Height,
	}
	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Cols; col++ {
			r := Rect{
				X: opts.Margin + float64(col)*(cardW+opts.Gap),
				Y: opts.Top + opts.Margin + float64(row)*(cardH+opts.Gap),
				W: cardW,
				H: cardH,
			}
			obj := resolv.NewObject(r.X, r.Y, r.W, r.H, CollisionSpaceTagCard)
			obj.Data = len(layout.rects)
			space.Add(obj)
			layout.rects = append(layout.rects, r)
		}
	}
	layout.probe = resolv.NewObject(0, 0, 1, 1, CollisionSpaceTagPointer)
	space.Add(layout.probe)

	return layout, nil
}

func (l *CardLayout) Rows() int {
	return l.rows
}

func (l *CardLayout) Cols() int {
	return l.cols
}

func (l *CardLayout) Len() int {
	return len(l.rects)
}

// Rect returns the rectangle of the card at index.
func (l *CardLayout) Rect(index int) Rect {
	return l.rects[index]
}

// CardAt returns the index of the card under the point.
// The space narrows the candidates down to the cards sharing cells with the
// point, the rectangles decide.
func (l *CardLayout) CardAt(x, y float64) (int, bool) {
	if x < 0 || y < 0 || x > l.width || y > l.height {
		return 0, false
	}
	l.probe.Position.X = x
	l.probe.Position.Y = y
	l.probe.Update()

	collision := l.probe.Check(0, 0, CollisionSpaceTagCard)
	if collision == nil {
		return 0, false
	}
	for _, obj := range collision.Objects {
		index, ok := obj.Data.(int)
		if !ok {
			continue
		}
		if l.rects[index].Contains(x, y) {
			return index, true
		}
	}
	return 0, false
}
