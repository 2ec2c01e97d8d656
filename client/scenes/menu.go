package scenes

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/cbodonnell/memoryline/client/fonts"
	"github.com/cbodonnell/memoryline/client/objects"
	"github.com/cbodonnell/memoryline/client/ui"
	"github.com/cbodonnell/memoryline/pkg/catalog"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

type MenuScene struct {
	*BaseScene

	// catalog provides the categories offered as buttons.
	catalog *catalog.Catalog
	// onSelect is called with the category name when a button is pressed.
	onSelect func(category string) error
	// subtitle describes the mode the next game is played in.
	subtitle string
	// selectErr is shown below the buttons after a failed selection.
	selectErr string
	ui        *ebitenui.UI
}

type MenuSceneOptions struct {
	// Catalog provides the categories offered as buttons.
	Catalog *catalog.Catalog
	// OnSelect is called when a category button is pressed.
	OnSelect func(category string) error
	// Subtitle is shown below the title.
	Subtitle string
}

var _ Scene = &MenuScene{}

func NewMenuScene(opts MenuSceneOptions) (Scene, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("menu scene requires a catalog")
	}
	if opts.OnSelect == nil {
		return nil, fmt.Errorf("menu scene requires a select handler")
	}
	return &MenuScene{
		BaseScene: NewBaseScene(objects.NewBaseObject("menu-root", nil)),
		catalog:   opts.Catalog,
		onSelect:  opts.OnSelect,
		subtitle:  opts.Subtitle,
	}, nil
}

func (s *MenuScene) Init() error {
	s.renderUI()
	return s.BaseScene.Init()
}

func (s *MenuScene) renderUI() {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:   image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
	}

	fontFace := fonts.TTFNormalFont

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(20),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    60,
				Left:   160,
				Right:  160,
				Bottom: 60,
			}))),
	)

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text("Memory", fonts.TitleFont, color.NRGBA{R: 254, G: 255, B: 255, A: 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	))

	if s.subtitle != "" {
		rootContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(s.subtitle, fonts.TTFSmallFont, color.NRGBA{R: 200, G: 200, B: 200, A: 255}),
			widget.TextOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
				}),
			),
		))
	}

	for _, name := range s.catalog.Names() {
		category, err := s.catalog.Category(name)
		if err != nil {
			log.Warn("Skipping category %s: %v", name, err)
			continue
		}
		label := category.Title
		if label == "" {
			label = category.Name
		}

		button := widget.NewButton(
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
					Stretch:  true,
				}),
			),
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(label, fontFace, &widget.ButtonTextColor{
				Idle:     color.NRGBA{254, 255, 255, 255},
				Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			}),
			widget.ButtonOpts.TextPadding(widget.Insets{
				Left:   30,
				Right:  30,
				Top:    5,
				Bottom: 5,
			}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.selectCategory(name)
			}),
		)
		rootContainer.AddChild(button)
	}

	if s.selectErr != "" {
		rootContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(s.selectErr, fonts.TTFSmallFont, color.NRGBA{R: 255, G: 0, B: 0, A: 255}),
			widget.TextOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
				}),
			),
		))
		s.selectErr = ""
	}

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *MenuScene) selectCategory(name string) {
	if err := s.onSelect(name); err != nil {
		log.Error("Failed to start %s game: %v", name, err)
		var actionableErr *ui.ActionableError
		if errors.As(err, &actionableErr) {
			s.selectErr = actionableErr.Message
		} else {
			s.selectErr = fmt.Sprintf("Could not start the %s game.", name)
		}
		s.renderUI()
	}
}

func (s *MenuScene) Update() error {
	s.ui.Update()
	return s.BaseScene.Update()
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
	s.BaseScene.Draw(screen)
}
