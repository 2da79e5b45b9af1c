package inspect

import (
	"errors"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/gizmo"
)

// ErrNoCapability is returned when a target lacks something an operation
// needs, such as a scene without a root or a camera.
var ErrNoCapability = errors.New("inspect: target lacks a required capability")

// Node is one entity of a live scene graph.
type Node interface {
	// UniqueID is the intrinsic identity, or "" when the node has none.
	UniqueID() string
	TypeName() string
	NodeName() string
	// HostElement is the id of the element hosting the node, used to name
	// unnamed nodes. It may be empty.
	HostElement() string
	// ParentNode returns nil for the root.
	ParentNode() Node
	ChildNodes() []Node
	WorldMatrix() rl.Matrix
	// Inspectable is the value whose fields are shown in the node's folder.
	Inspectable() any
}

// SceneGraph is a scene with a root node and an active camera.
type SceneGraph interface {
	Root() Node
	Camera() Node
}

// Bounded nodes have geometry with a local bounding sphere.
type Bounded interface {
	BoundingSphere() (center rl.Vector3, radius float32, ok bool)
}

// Positioned nodes expose their local position for animation.
type Positioned interface {
	PositionRef() *rl.Vector3
}

// Aliver reports whether a node still belongs to its scene.
type Aliver interface {
	Alive() bool
}

// Overlay scenes display the locate highlight box and indicator arrow.
type Overlay interface {
	SetHighlight(b *gizmo.Box)
	SetIndicator(a *gizmo.Arrow)
}

// WorldUpdater scenes refresh cached world matrices on demand.
type WorldUpdater interface {
	UpdateMatrixWorld()
}

// RemovalNotifier scenes report nodes leaving the graph.
type RemovalNotifier interface {
	OnRemoved(fn func(Node))
}

// Tweener animates a vector to a target over a duration. Starting a tween
// on a target that is already animating replaces the running one.
type Tweener interface {
	Tween(target *rl.Vector3, to rl.Vector3, d time.Duration)
}

// alive treats nodes without a liveness check as alive.
func alive(n Node) bool {
	if n == nil {
		return false
	}
	if a, ok := n.(Aliver); ok {
		return a.Alive()
	}
	return true
}
