package engine

// GameObjectRef is a weak reference to a GameObject by UID. It does not keep
// the object alive and resolves to nil once the object leaves the scene.
//
// Example:
//
//	type Orbit struct {
//	    engine.BaseComponent
//	    Center engine.GameObjectRef
//	}
//
//	func (o *Orbit) Update(dt float32) {
//	    if c := o.Center.Get(o.GetGameObject().Scene); c != nil {
//	        // circle around c...
//	    }
//	}
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// RefTo returns a reference to g, or an empty one for nil.
func RefTo(g *GameObject) GameObjectRef {
	var r GameObjectRef
	r.Set(g)
	return r
}

// Get resolves the reference in scene. It returns nil for an empty
// reference, a nil scene or an object that is no longer registered.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference points to something. It does not
// check that the object still exists.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
