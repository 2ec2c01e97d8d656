package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/cbodonnell/memoryline/client/flow"
	"github.com/cbodonnell/memoryline/client/input"
	"github.com/cbodonnell/memoryline/client/objects"
	"github.com/cbodonnell/memoryline/client/scenes"
	"github.com/cbodonnell/memoryline/client/ui"
	"github.com/cbodonnell/memoryline/pkg/catalog"
	"github.com/cbodonnell/memoryline/pkg/config"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var backgroundColor = color.NRGBA{R: 24, G: 28, B: 38, A: 255}

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// config holds the grid and window settings.
	config *config.Config
	// catalog provides the categories offered in the menu.
	catalog *catalog.Catalog
	// images resolves image values for the image category.
	images objects.ImageSource
	// speaker plays sound values for the sound category.
	speaker memory.Speaker
	// mode is the current game mode.
	mode flow.GameMode
	// scene is the current scene.
	scene scenes.Scene
}

type NewGameOptions struct {
	Debug   bool
	Config  *config.Config
	Catalog *catalog.Catalog
	Images  objects.ImageSource
	Speaker memory.Speaker
}

func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("game requires a catalog")
	}

	g := &Game{
		debug:   opts.Debug,
		config:  opts.Config,
		catalog: opts.Catalog,
		images:  opts.Images,
		speaker: opts.Speaker,
	}

	if err := g.loadMenu(); err != nil {
		return nil, fmt.Errorf("failed to load menu scene: %v", err)
	}

	return g, nil
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

func (g *Game) loadMenu() error {
	menu, err := scenes.NewMenuScene(scenes.MenuSceneOptions{
		Catalog:  g.catalog,
		OnSelect: g.loadGame,
		Subtitle: g.subtitle(),
	})
	if err != nil {
		return fmt.Errorf("failed to create menu scene: %v", err)
	}
	if err := g.SetScene(menu); err != nil {
		return fmt.Errorf("failed to set menu scene: %v", err)
	}
	g.mode = flow.GameModeMenu
	return nil
}

func (g *Game) subtitle() string {
	switch g.config.Mode {
	case memory.ModeStatic:
		return "Static board"
	case memory.ModePreview:
		return "Preview: flip any card"
	default:
		return "Pick a category"
	}
}

// loadGame builds a fresh grid for the category and switches to it.
func (g *Game) loadGame(name string) error {
	category, err := g.catalog.Category(name)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}

	gameScene, err := scenes.NewGameScene(scenes.GameSceneOptions{
		Category:   category,
		Mode:       g.config.Mode,
		Policy:     g.config.Policy,
		Rows:       g.config.Rows,
		Cols:       g.config.Cols,
		ResetDelay: g.config.ResetDelay.Duration,
		Seed:       g.config.Seed,
		Width:      g.config.WindowWidth,
		Height:     g.config.WindowHeight,
		Images:     g.images,
		Speaker:    g.speaker,
	})
	if err != nil {
		if errors.Is(err, memory.ErrCatalogTooSmall) {
			return &ui.ActionableError{
				Message: fmt.Sprintf("Not enough %s for a %dx%d board.", name, g.config.Rows, g.config.Cols),
				Err:     err,
			}
		}
		return fmt.Errorf("failed to create game scene: %w", err)
	}
	if err := g.SetScene(gameScene); err != nil {
		return fmt.Errorf("failed to set game scene: %v", err)
	}
	g.mode = flow.GameModePlay
	return nil
}

func (g *Game) loadError(msg string) error {
	errorScene, err := scenes.NewErrorScene(msg)
	if err != nil {
		return fmt.Errorf("failed to create error scene: %v", err)
	}
	if err := g.SetScene(errorScene); err != nil {
		return fmt.Errorf("failed to set error scene: %v", err)
	}
	g.mode = flow.GameModeError
	return nil
}

func (g *Game) Update() error {
	// Handle input
	if err := g.handleInput(); err != nil {
		return fmt.Errorf("failed to handle input: %v", err)
	}

	// Update the current scene
	if err := g.scene.Update(); err != nil {
		log.Error("Scene error: %v", err)
		if err := g.loadError("Something went wrong"); err != nil {
			return fmt.Errorf("failed to load error scene: %v", err)
		}
		return nil
	}

	if g.mode == flow.GameModePlay {
		if gameScene, ok := g.scene.(*scenes.GameScene); ok && gameScene.Complete() {
			log.Info("Grid %s complete", gameScene.Grid().ID())
			g.mode = flow.GameModeComplete
		}
	}

	return nil
}

func (g *Game) handleInput() error {
	if input.IsDebugJustPressed() {
		g.debug = !g.debug
	}

	switch g.mode {
	case flow.GameModeMenu:
	case flow.GameModePlay:
		if input.IsNegativeJustPressed() {
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
		}
	case flow.GameModeComplete, flow.GameModeError:
		if input.IsNegativeJustPressed() || isConfirmJustPressed() {
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
		}
	}

	return nil
}

// isConfirmJustPressed ignores mouse and touch so the click that completes a
// board does not also dismiss it.
func isConfirmJustPressed() bool {
	return input.IsPositiveJustPressed() && !input.IsPointerJustPressed()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Mode: %s", g.mode))

	gameScene, ok := g.scene.(*scenes.GameScene)
	if !ok {
		return
	}
	grid := gameScene.Grid()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   State: %s", grid.State()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n\n   Pending reset: %t", grid.Pending()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.WindowWidth, g.config.WindowHeight
}
