package objects

import (
	"fmt"

	"github.com/cbodonnell/memoryline/pkg/collisions"
	"github.com/cbodonnell/memoryline/pkg/memory"
)

// BoardObject lays out one CardObject per grid card and maps screen
// positions back to card indexes.
type BoardObject struct {
	*BaseObject

	grid   *memory.Grid
	layout *collisions.CardLayout
	images ImageSource
}

type NewBoardObjectOptions struct {
	// Grid is the grid whose cards are drawn.
	Grid *memory.Grid
	// Layout is the card placement, sized to the grid.
	Layout *collisions.CardLayout
	// Images resolves image values, may be nil.
	Images ImageSource
}

var _ GameObject = &BoardObject{}

func NewBoardObject(id string, opts NewBoardObjectOptions) (*BoardObject, error) {
	if opts.Layout.Len() != len(opts.Grid.Cards()) {
		return nil, fmt.Errorf("layout has %d cells, grid has %d cards", opts.Layout.Len(), len(opts.Grid.Cards()))
	}
	return &BoardObject{
		BaseObject: NewBaseObject(id, nil),
		grid:       opts.Grid,
		layout:     opts.Layout,
		images:     opts.Images,
	}, nil
}

// Init adds the card objects that are not attached yet.
func (o *BoardObject) Init() error {
	static := o.grid.Mode() == memory.ModeStatic
	for _, card := range o.grid.Cards() {
		if o.GetChild(CardObjectID(card.Index())) != nil {
			continue
		}
		cardObject := NewCardObject(NewCardObjectOptions{
			Card:   card,
			Rect:   o.layout.Rect(card.Index()),
			Static: static,
			Images: o.images,
		})
		if err := o.AddChild(cardObject.GetID(), cardObject); err != nil {
			return fmt.Errorf("failed to add card object: %v", err)
		}
	}
	return nil
}

// Destroy detaches the card objects so the board can be initialized again.
func (o *BoardObject) Destroy() error {
	for _, card := range o.grid.Cards() {
		if o.GetChild(CardObjectID(card.Index())) == nil {
			continue
		}
		if err := o.RemoveChild(CardObjectID(card.Index())); err != nil {
			return fmt.Errorf("failed to remove card object: %v", err)
		}
	}
	return nil
}

// CardAt returns the index of the card under the screen position.
func (o *BoardObject) CardAt(x, y int) (int, bool) {
	return o.layout.CardAt(float64(x), float64(y))
}
