package objects

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/memoryline/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// TextOverlayObject dims the screen and prints a centered headline with an
// optional hint line below it.
type TextOverlayObject struct {
	*BaseObject

	text string
	hint string
}

func NewTextOverlayObject(id string, text string, hint string) *TextOverlayObject {
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: 100}),
		text:       text,
		hint:       hint,
	}
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, w, h, color.NRGBA{A: 160}, false)

	t := strings.ToUpper(o.text)
	drawCentered(screen, t, fonts.TTFLargeFont, float64(w)/2, float64(h)/2, color.White)
	if o.hint != "" {
		drawCentered(screen, o.hint, fonts.TTFSmallFont, float64(w)/2, float64(h)/2+40, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	}
}

// drawCentered draws s so that its bounding box is centered on (cx, cy).
func drawCentered(screen *ebiten.Image, s string, f font.Face, cx, cy float64, clr color.Color) {
	bounds, _ := font.BoundString(f, s)
	width := float64((bounds.Max.X - bounds.Min.X) >> 6)
	height := float64((bounds.Max.Y - bounds.Min.Y) >> 6)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cx-width/2, cy+height/2)
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(screen, s, f, op)
}
