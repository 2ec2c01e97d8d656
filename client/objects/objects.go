package objects

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Lifecycle is driven by the scene: Init when attached, Update once per tick,
// Draw once per frame and Destroy when detached.
type Lifecycle interface {
	Init() error
	Destroy() error
	Update() error
	Draw(screen *ebiten.Image)
}

// GameObject is a node of the scene tree.
type GameObject interface {
	Lifecycle

	GetID() string
	GetZIndex() int
	GetParent() GameObject
	SetParent(parent GameObject)
	GetChild(id string) GameObject
	GetChildren() []GameObject
	AddChild(id string, child GameObject) error
	RemoveChild(id string) error
}

// BaseObject keeps a list of children ordered by z-index.
// Types embedding it only override the lifecycle methods they need.
type BaseObject struct {
	// id is the unique identifier of the object within its parent.
	id string
	// zIndex orders siblings when drawing, lowest first.
	zIndex int
	// parent is the object this one is attached to, nil for a root.
	parent GameObject
	// children are sorted by z-index, insertion order for ties.
	children []GameObject
}

type NewBaseObjectOpts struct {
	// ZIndex is the z-index of the object.
	ZIndex int
}

var _ GameObject = &BaseObject{}

func NewBaseObject(id string, opts *NewBaseObjectOpts) *BaseObject {
	if opts == nil {
		opts = &NewBaseObjectOpts{}
	}
	return &BaseObject{
		id:       id,
		zIndex:   opts.ZIndex,
		children: make([]GameObject, 0),
	}
}

func (o *BaseObject) Init() error {
	return nil
}

func (o *BaseObject) Destroy() error {
	return nil
}

func (o *BaseObject) Update() error {
	return nil
}

func (o *BaseObject) Draw(screen *ebiten.Image) {}

func (o *BaseObject) GetID() string {
	return o.id
}

func (o *BaseObject) GetZIndex() int {
	return o.zIndex
}

func (o *BaseObject) GetParent() GameObject {
	return o.parent
}

func (o *BaseObject) SetParent(parent GameObject) {
	o.parent = parent
}

func (o *BaseObject) GetChild(id string) GameObject {
	for _, child := range o.children {
		if child.GetID() == id {
			return child
		}
	}
	return nil
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children
}

// AddChild initializes the child tree and inserts it after every sibling with
// a lower or equal z-index.
func (o *BaseObject) AddChild(id string, child GameObject) error {
	if o.GetChild(id) != nil {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if child.GetID() != id {
		return fmt.Errorf("child object id mismatch: %s != %s", child.GetID(), id)
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	child.SetParent(o)
	i := sort.Search(len(o.children), func(i int) bool {
		return o.children[i].GetZIndex() > child.GetZIndex()
	})
	o.children = append(o.children, nil)
	copy(o.children[i+1:], o.children[i:])
	o.children[i] = child
	return nil
}

func (o *BaseObject) RemoveChild(id string) error {
	for i, child := range o.children {
		if child.GetID() != id {
			continue
		}
		if err := DestroyTree(child); err != nil {
			return fmt.Errorf("failed to destroy child object tree: %v", err)
		}
		o.children = append(o.children[:i], o.children[i+1:]...)
		child.SetParent(nil)
		return nil
	}
	return fmt.Errorf("child object with id %s does not exist", id)
}

// RemoveFromParent detaches the object from its parent. It is safe to call
// from the object's own Update since UpdateTree iterates over a copy.
func (o *BaseObject) RemoveFromParent() error {
	if o.parent == nil {
		return fmt.Errorf("object %s has no parent", o.id)
	}
	return o.parent.RemoveChild(o.id)
}

// InitTree initializes the object and then its children.
func InitTree(object GameObject) error {
	if err := object.Init(); err != nil {
		return fmt.Errorf("failed to initialize object %s: %v", object.GetID(), err)
	}
	for _, child := range object.GetChildren() {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return nil
}

// DestroyTree destroys the children before the object itself.
func DestroyTree(object GameObject) error {
	for _, child := range object.GetChildren() {
		if err := DestroyTree(child); err != nil {
			return err
		}
	}
	if err := object.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy object %s: %v", object.GetID(), err)
	}
	return nil
}

func UpdateTree(object GameObject) error {
	if err := object.Update(); err != nil {
		return fmt.Errorf("failed to update object %s: %v", object.GetID(), err)
	}
	children := append([]GameObject(nil), object.GetChildren()...)
	for _, child := range children {
		if err := UpdateTree(child); err != nil {
			return err
		}
	}
	return nil
}

func DrawTree(object GameObject, screen *ebiten.Image) {
	object.Draw(screen)
	for _, child := range object.GetChildren() {
		DrawTree(child, screen)
	}
}
