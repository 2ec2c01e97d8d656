package memory

import "strconv"

// Card is one cell of a grid.
type Card struct {
	// index is the position of the card in the grid, row-major.
	index int
	// kind is the presentation of the card's category.
	kind Kind
	// value is the content compared when matching.
	value Value
	// faceUp is true while the value is displayed.
	faceUp bool
	// matched is true once the card is part of a found pair.
	matched bool
	// grid is the owning grid. Cards report selections to it.
	grid *Grid
}

var _ Activatable = &Card{}

func (c *Card) Index() int {
	return c.index
}

func (c *Card) Kind() Kind {
	return c.kind
}

func (c *Card) Value() Value {
	return c.value
}

func (c *Card) FaceUp() bool {
	return c.faceUp
}

func (c *Card) Matched() bool {
	return c.matched
}

// Displayed returns the value shown on the card, or "" when face-down.
func (c *Card) Displayed() Value {
	if !c.faceUp {
		return ""
	}
	return c.value
}

// Label is the placeholder text of a face-down card.
func (c *Card) Label() string {
	return strconv.Itoa(c.index)
}

// Activate reveals the card and reports it to the grid.
// Activating a face-up card does nothing.
func (c *Card) Activate() {
	if c.faceUp {
		return
	}
	if !c.grid.beforeSelect(c) {
		return
	}
	c.reveal()
	c.grid.reportSelected(c)
}

// Reset turns the card face-down. It is safe to call on a face-down card.
func (c *Card) Reset() {
	wasUp := c.faceUp
	c.faceUp = false
	c.matched = false
	if wasUp {
		c.grid.emit(Event{Type: EventCardHidden, Cards: []int{c.index}, Value: c.value})
	}
}

// Toggle flips the card without taking part in matching.
func (c *Card) Toggle() {
	if c.faceUp {
		c.Reset()
		return
	}
	c.reveal()
}

func (c *Card) reveal() {
	c.faceUp = true
	if c.kind == KindSound {
		c.grid.play(c.value)
	}
	c.grid.emit(Event{Type: EventCardRevealed, Cards: []int{c.index}, Value: c.value})
}
