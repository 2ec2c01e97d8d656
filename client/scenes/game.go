package scenes

import (
	"fmt"
	"image/color"
	"time"

	"github.com/cbodonnell/memoryline/client/fonts"
	"github.com/cbodonnell/memoryline/client/input"
	"github.com/cbodonnell/memoryline/client/objects"
	"github.com/cbodonnell/memoryline/pkg/catalog"
	"github.com/cbodonnell/memoryline/pkg/clock"
	"github.com/cbodonnell/memoryline/pkg/collisions"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/cbodonnell/memoryline/pkg/queue"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/samber/lo"
)

const (
	headerHeight   = 40
	boardMargin    = 12
	boardGap       = 10
	effectDuration = 800 * time.Millisecond
)

var (
	matchColor    = color.NRGBA{R: 120, G: 220, B: 120, A: 255}
	mismatchColor = color.NRGBA{R: 240, G: 110, B: 110, A: 255}
	headerColor   = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
)

type GameScene struct {
	*BaseScene

	// category is the category the grid was dealt from.
	category *catalog.Category
	// grid is the card state machine.
	grid *memory.Grid
	// scheduler runs the grid's deferred resets, advanced once per tick.
	scheduler *clock.TickScheduler
	// events carries the grid's effects to the scene.
	events queue.Queue[memory.Event]
	// board draws the cards and maps clicks to card indexes.
	board *objects.BoardObject
	// effectCount makes text effect ids unique.
	effectCount int
	// complete is set once every pair has been found.
	complete bool
	// width is the logical screen width.
	width int
}

type GameSceneOptions struct {
	// Category is the category to deal from.
	Category *catalog.Category
	// Mode selects static, preview or match behavior.
	Mode memory.Mode
	// Policy decides what a third activation does while a mismatch is shown.
	Policy memory.ResolvePolicy
	// Rows and Cols are the board dimensions.
	Rows int
	Cols int
	// ResetDelay is how long a mismatched pair stays face-up.
	ResetDelay time.Duration
	// Seed makes the deal reproducible. Zero deals a fresh shuffle.
	Seed uint64
	// Width and Height are the logical screen size.
	Width  int
	Height int
	// Images resolves image values. Optional.
	Images objects.ImageSource
	// Speaker plays sound values. Optional.
	Speaker memory.Speaker
}

var _ Scene = &GameScene{}

func NewGameScene(opts GameSceneOptions) (*GameScene, error) {
	if opts.Category == nil {
		return nil, fmt.Errorf("game scene requires a category")
	}

	scheduler := clock.NewTickScheduler()
	events := queue.NewInMemoryQueue[memory.Event]()

	rng := memory.NewRand()
	if opts.Seed != 0 {
		rng = memory.NewSeededRand(opts.Seed)
	}

	grid, err := memory.NewGrid(memory.GridOptions{
		Rows:       opts.Rows,
		Cols:       opts.Cols,
		Kind:       opts.Category.Kind,
		Values:     opts.Category.Values,
		Mode:       opts.Mode,
		Policy:     opts.Policy,
		ResetDelay: opts.ResetDelay,
		Rand:       rng,
		Scheduler:  scheduler,
		Speaker:    opts.Speaker,
		Events:     events,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}

	layout, err := collisions.NewCardLayout(collisions.CardLayoutOptions{
		Width:  float64(opts.Width),
		Height: float64(opts.Height),
		Top:    headerHeight,
		Margin: boardMargin,
		Gap:    boardGap,
		Rows:   opts.Rows,
		Cols:   opts.Cols,
	})
	if err != nil {
		grid.Close()
		return nil, fmt.Errorf("failed to lay out cards: %w", err)
	}

	board, err := objects.NewBoardObject("board", objects.NewBoardObjectOptions{
		Grid:   grid,
		Layout: layout,
		Images: opts.Images,
	})
	if err != nil {
		grid.Close()
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	if preloader, ok := opts.Images.(memory.Preloader); ok && opts.Category.Kind == memory.KindImage && opts.Mode != memory.ModeStatic {
		preloader.Preload(lo.Uniq(grid.Values()))
	}

	root := objects.NewBaseObject("game-root", nil)
	if err := root.AddChild(board.GetID(), board); err != nil {
		grid.Close()
		return nil, fmt.Errorf("failed to add board: %w", err)
	}

	return &GameScene{
		BaseScene: NewBaseScene(root),
		category:  opts.Category,
		grid:      grid,
		scheduler: scheduler,
		events:    events,
		board:     board,
		width:     opts.Width,
	}, nil
}

func (s *GameScene) Grid() *memory.Grid {
	return s.grid
}

// Complete reports whether every pair has been found.
func (s *GameScene) Complete() bool {
	return s.complete
}

func (s *GameScene) Update() error {
	if x, y, ok := input.PointerJustReleased(); ok && !s.complete {
		if index, ok := s.board.CardAt(x, y); ok {
			if err := s.grid.Activate(index); err != nil {
				return fmt.Errorf("failed to activate card %d: %w", index, err)
			}
		}
	}

	s.scheduler.Advance(time.Second / time.Duration(ebiten.TPS()))

	if err := s.handleEvents(); err != nil {
		return fmt.Errorf("failed to handle grid events: %w", err)
	}

	return s.BaseScene.Update()
}

func (s *GameScene) handleEvents() error {
	for _, event := range s.events.ReadAllMessages() {
		log.Trace("Grid event %s %v", event.Type, event.Cards)
		switch event.Type {
		case memory.EventPairMatched:
			if err := s.addEffect("Match!", matchColor); err != nil {
				return err
			}
		case memory.EventPairMismatched:
			if err := s.addEffect("No match", mismatchColor); err != nil {
				return err
			}
		case memory.EventGridComplete:
			s.complete = true
			overlay := objects.NewTextOverlayObject("overlay-complete", "All pairs found!", "Press Enter to return to the menu")
			if err := s.GetRoot().AddChild(overlay.GetID(), overlay); err != nil {
				return fmt.Errorf("failed to add completion overlay: %w", err)
			}
		}
	}
	return nil
}

func (s *GameScene) addEffect(msg string, clr color.Color) error {
	s.effectCount++
	id := fmt.Sprintf("effect-%d", s.effectCount)
	effect := objects.NewTextEffect(id, objects.NewTextEffectOptions{
		Text:   msg,
		X:      float64(s.width) * 3 / 4,
		Y:      headerHeight - 12,
		Color:  clr,
		Scroll: false,
		TTL:    effectDuration,
		ZIndex: 10,
	})
	if err := s.GetRoot().AddChild(id, effect); err != nil {
		return fmt.Errorf("failed to add text effect: %w", err)
	}
	return nil
}

func (s *GameScene) Draw(screen *ebiten.Image) {
	title := s.category.Title
	if title == "" {
		title = s.category.Name
	}
	header := title
	if s.grid.Mode() == memory.ModeMatch {
		header = fmt.Sprintf("%s   pairs left: %d", title, s.grid.Remaining())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(boardMargin, headerHeight-12)
	op.ColorScale.ScaleWithColor(headerColor)
	text.DrawWithOptions(screen, header, fonts.TTFSmallFont, op)

	s.BaseScene.Draw(screen)
}

// Destroy cancels the pending reset and stops any sound still playing.
func (s *GameScene) Destroy() error {
	s.grid.Close()
	s.events.ClearQueue()
	return s.BaseScene.Destroy()
}
