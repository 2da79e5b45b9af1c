package engine

import (
	"inspect3d/internal/gizmo"
	"inspect3d/internal/inspect"
)

// Scene owns a tree of GameObjects under a root object of type "Scene".
// GameObjects lists every registered object except the root, in the order
// they joined the scene.
type Scene struct {
	Name        string
	GameObjects []*GameObject

	root   *GameObject
	camera *GameObject
	uidMap map[uint64]*GameObject

	// Changed fires after objects are added or removed.
	Changed Event
	// Removed fires once for every object leaving the scene.
	Removed EventWithArg[*GameObject]

	highlight *gizmo.Box
	indicator *gizmo.Arrow
}

func NewScene(name string) *Scene {
	s := &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
	s.root = NewGameObject(name)
	s.root.Type = "Scene"
	s.root.Scene = s
	s.uidMap[s.root.UID] = s.root
	return s
}

// AddGameObject registers g and its subtree. Objects without a parent are
// placed under the scene root.
func (s *Scene) AddGameObject(g *GameObject) {
	if g.Parent == nil {
		s.root.AddChild(g)
	}
	if g.Scene != s {
		s.register(g)
	}
	s.Changed.Invoke()
}

func (s *Scene) register(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	g.removed = false
	s.uidMap[g.UID] = g
	s.GameObjects = append(s.GameObjects, g)
	for _, c := range g.Children {
		s.register(c)
	}
}

// RemoveGameObject detaches g and drops it and all its descendants.
func (s *Scene) RemoveGameObject(g *GameObject) {
	if g == s.root || g.Scene != s {
		return
	}
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	s.unregister(g)
	s.Changed.Invoke()
}

func (s *Scene) unregister(g *GameObject) {
	for _, c := range g.Children {
		s.unregister(c)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	if s.camera == g {
		s.camera = nil
	}
	g.Scene = nil
	g.removed = true
	s.Removed.Invoke(g)
}

// FindByUID is an O(1) lookup by object UID.
func (s *Scene) FindByUID(uid uint64) *GameObject {
	if s.uidMap == nil {
		return nil
	}
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// SetCamera selects the active camera. It must already be in the scene.
func (s *Scene) SetCamera(g *GameObject) {
	if g != nil && g.Scene != s {
		s.AddGameObject(g)
	}
	s.camera = g
}

func (s *Scene) RootObject() *GameObject   { return s.root }
func (s *Scene) CameraObject() *GameObject { return s.camera }

func (s *Scene) Root() inspect.Node {
	return s.root
}

func (s *Scene) Camera() inspect.Node {
	if s.camera == nil {
		return nil
	}
	return s.camera
}

func (s *Scene) OnRemoved(fn func(inspect.Node)) {
	s.Removed.AddListener(func(g *GameObject) { fn(g) })
}

// UpdateMatrixWorld refreshes the cached MatrixWorld of every object.
func (s *Scene) UpdateMatrixWorld() {
	var walk func(g *GameObject)
	walk = func(g *GameObject) {
		g.MatrixWorld = g.WorldMatrix()
		for _, c := range g.Children {
			walk(c)
		}
	}
	walk(s.root)
}

func (s *Scene) SetHighlight(b *gizmo.Box)   { s.highlight = b }
func (s *Scene) SetIndicator(a *gizmo.Arrow) { s.indicator = a }
func (s *Scene) Highlight() *gizmo.Box       { return s.highlight }
func (s *Scene) Indicator() *gizmo.Arrow     { return s.indicator }

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
	s.UpdateMatrixWorld()
}
