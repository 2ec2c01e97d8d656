package scenes

import (
	"github.com/cbodonnell/memoryline/client/objects"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the game. Only one scene is active at a time and
// switching scenes destroys the previous one.
type Scene interface {
	objects.Lifecycle

	// GetRoot returns the root of the scene's object tree.
	GetRoot() objects.GameObject
}

// BaseScene runs the lifecycle of an object tree. Scenes embed it and add
// their own input handling and drawing around it.
type BaseScene struct {
	Root objects.GameObject
}

func NewBaseScene(root objects.GameObject) *BaseScene {
	return &BaseScene{
		Root: root,
	}
}

func (s *BaseScene) GetRoot() objects.GameObject {
	return s.Root
}

func (s *BaseScene) Init() error {
	return objects.InitTree(s.Root)
}

func (s *BaseScene) Destroy() error {
	return objects.DestroyTree(s.Root)
}

func (s *BaseScene) Update() error {
	return objects.UpdateTree(s.Root)
}

func (s *BaseScene) Draw(screen *ebiten.Image) {
	objects.DrawTree(s.Root, screen)
}
