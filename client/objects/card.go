package objects

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cbodonnell/memoryline/client/fonts"
	"github.com/cbodonnell/memoryline/pkg/catalog"
	"github.com/cbodonnell/memoryline/pkg/collisions"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	cardBackColor    = color.NRGBA{R: 52, G: 86, B: 139, A: 255}
	cardFaceColor    = color.NRGBA{R: 236, G: 236, B: 228, A: 255}
	cardMatchedColor = color.NRGBA{R: 188, G: 222, B: 176, A: 255}
	cardStaticColor  = color.NRGBA{R: 150, G: 150, B: 160, A: 255}
	cardBorderColor  = color.NRGBA{R: 30, G: 30, B: 40, A: 255}
	cardTextColor    = color.NRGBA{R: 20, G: 20, B: 30, A: 255}
)

// ImageSource resolves an image value to a texture. It returns nil when the
// image is not available.
type ImageSource interface {
	Image(value memory.Value) *ebiten.Image
}

// CardObject draws a memory card inside its rectangle on the board.
type CardObject struct {
	*BaseObject

	// card is the card state owned by the grid.
	card *memory.Card
	// rect is the area of the screen covered by the card.
	rect collisions.Rect
	// static is true when the card only shows its position label.
	static bool
	// images resolves image values, may be nil.
	images ImageSource
}

type NewCardObjectOptions struct {
	// Card is the card to draw.
	Card *memory.Card
	// Rect is the area of the screen covered by the card.
	Rect collisions.Rect
	// Static draws the position label instead of the card state.
	Static bool
	// Images resolves image values.
	Images ImageSource
}

var _ GameObject = &CardObject{}

func NewCardObject(opts NewCardObjectOptions) *CardObject {
	return &CardObject{
		BaseObject: NewBaseObject(CardObjectID(opts.Card.Index()), nil),
		card:       opts.Card,
		rect:       opts.Rect,
		static:     opts.Static,
		images:     opts.Images,
	}
}

// CardObjectID is the object id of the card at index.
func CardObjectID(index int) string {
	return fmt.Sprintf("card-%d", index)
}

func (o *CardObject) Card() *memory.Card {
	return o.card
}

func (o *CardObject) Rect() collisions.Rect {
	return o.rect
}

func (o *CardObject) Draw(screen *ebiten.Image) {
	x, y, w, h := float32(o.rect.X), float32(o.rect.Y), float32(o.rect.W), float32(o.rect.H)
	cx, cy := o.rect.X+o.rect.W/2, o.rect.Y+o.rect.H/2

	switch {
	case o.static:
		vector.DrawFilledRect(screen, x, y, w, h, cardStaticColor, false)
		drawCentered(screen, o.card.Label(), fonts.TTFNormalFont, cx, cy, cardTextColor)
	case !o.card.FaceUp():
		vector.DrawFilledRect(screen, x, y, w, h, cardBackColor, false)
	default:
		bg := cardFaceColor
		if o.card.Matched() {
			bg = cardMatchedColor
		}
		vector.DrawFilledRect(screen, x, y, w, h, bg, false)
		o.drawFace(screen, cx, cy)
	}

	vector.StrokeRect(screen, x, y, w, h, 2, cardBorderColor, false)
}

func (o *CardObject) drawFace(screen *ebiten.Image, cx, cy float64) {
	value := o.card.Displayed()
	switch o.card.Kind() {
	case memory.KindImage:
		if o.images != nil {
			if img := o.images.Image(value); img != nil {
				o.drawImage(screen, img)
				return
			}
		}
		drawCentered(screen, trimExt(string(value)), fonts.TTFSmallFont, cx, cy, cardTextColor)
	case memory.KindSound:
		drawCentered(screen, "♪", fonts.TTFLargeFont, cx, cy-10, cardTextColor)
		drawCentered(screen, trimExt(string(value)), fonts.TTFSmallFont, cx, cy+20, cardTextColor)
	default:
		lines := strings.Split(string(value), catalog.PairSeparator)
		lineHeight := 18.0
		top := cy - lineHeight*float64(len(lines)-1)/2
		for i, line := range lines {
			drawCentered(screen, line, fonts.TTFSmallFont, cx, top+float64(i)*lineHeight, cardTextColor)
		}
	}
}

// drawImage scales the image down to fit inside the card, centered.
func (o *CardObject) drawImage(screen *ebiten.Image, img *ebiten.Image) {
	const padding = 6
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	scale := min((o.rect.W-2*padding)/iw, (o.rect.H-2*padding)/ih, 1)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(o.rect.X+(o.rect.W-iw*scale)/2, o.rect.Y+(o.rect.H-ih*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func trimExt(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
