package objects

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameObject is the highest level interface for game related types.
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
	RemoveFromParent() error
}

// BaseObject provides the tree bookkeeping shared by every GameObject.
// Embedders override the lifecycle methods they need.
type BaseObject struct {
	id       string
	zIndex   int
	parent   GameObject
	children *childIndex
}

type NewBaseObjectOpts struct {
	// ZIndex orders siblings inside a SortedZIndexObject. Higher is drawn later.
	ZIndex int
}

func NewBaseObject(id string, opts *NewBaseObjectOpts) *BaseObject {
	o := &BaseObject{
		id:       id,
		children: newChildIndex(),
	}
	if opts != nil {
		o.zIndex = opts.ZIndex
	}
	return o
}

var _ GameObject = &BaseObject{}

func (o *BaseObject) Init() error { return nil }
func (o *BaseObject) Destroy() error { return nil }
func (o *BaseObject) Update() error { return nil }
func (o *BaseObject) Draw(screen *ebiten.Image) {}
func (o *BaseObject) GetID() string { return o.id }
func (o *BaseObject) GetZIndex() int { return o.zIndex }
func (o *BaseObject) GetParent() GameObject { return o.parent }
func (o *BaseObject) SetParent(parent GameObject) { o.parent = parent }

func (o *BaseObject) GetChild(id string) GameObject {
	return o.children.Get(id)
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children.objects
}

func (o *BaseObject) AddChild(id string, child GameObject) error {
	if _, ok := o.children.idxIDObjects[id]; ok {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	o.children.Add(id, child)
	child.SetParent(o)
	return nil
}

func (o *BaseObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)
	return nil
}

// RemoveFromParent detaches the object from its parent. It is a no-op for a root object.
func (o *BaseObject) RemoveFromParent() error {
	if o.parent == nil {
		return nil
	}
	return o.parent.RemoveChild(o.id)
}

// childIndex keeps children in insertion order with lookup by id.
type childIndex struct {
	objects      []GameObject
	idxIDObjects map[string]int
}

func newChildIndex() *childIndex {
	return &childIndex{
		objects:      make([]GameObject, 0),
		idxIDObjects: make(map[string]int),
	}
}

func (c *childIndex) Get(id string) GameObject {
	i, ok := c.idxIDObjects[id]
	if !ok {
		return nil
	}
	return c.objects[i]
}

func (c *childIndex) Add(id string, obj GameObject) {
	c.idxIDObjects[id] = len(c.objects)
	c.objects = append(c.objects, obj)
}

func (c *childIndex) Remove(id string) {
	i, ok := c.idxIDObjects[id]
	if !ok {
		return
	}
	c.objects = append(c.objects[:i], c.objects[i+1:]...)
	delete(c.idxIDObjects, id)
	for j := i; j < len(c.objects); j++ {
		c.idxIDObjects[c.objects[j].GetID()] = j
	}
}
