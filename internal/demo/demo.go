// Package demo builds the scene the inspect3d binaries open with, and hooks
// it to an inspector session.
package demo

import (
	"fmt"
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"

	"inspect3d/internal/engine"
	"inspect3d/internal/enums"
	"inspect3d/internal/inspect"
	"inspect3d/internal/panel"
)

// Settings are the render options of the demo window. They are inspected as
// a plain value next to the scene.
type Settings struct {
	Background  rl.Color
	ShowGrid    bool
	GridSlices  int32
	GridSpacing float32
	Paused      bool
	TimeScale   float32
	Wireframe   bool
}

func DefaultSettings() *Settings {
	return &Settings{
		Background:  rl.NewColor(18, 18, 24, 255),
		ShowGrid:    true,
		GridSlices:  20,
		GridSpacing: 1,
		TimeScale:   1,
	}
}

type Options struct {
	// Objects is the number of extra unnamed crates spawned at start.
	Objects int
	Seed    uint64
	Aspect  float32
}

// Demo is a small solar-system-like scene: a spinning cube with a moon in
// orbit, a floor and a camera on a rig.
type Demo struct {
	Scene    *engine.Scene
	Settings *Settings

	Rig    *engine.GameObject
	Camera *engine.GameObject
	Floor  *engine.GameObject
	Cube   *engine.GameObject
	Moon   *engine.GameObject
	Crates *engine.GameObject

	rng *rand.Rand
}

func New(opts Options) *Demo {
	if opts.Aspect <= 0 {
		opts.Aspect = 16.0 / 9.0
	}
	d := &Demo{
		Scene:    engine.NewScene("Demo"),
		Settings: DefaultSettings(),
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}

	d.Rig = engine.NewGameObject("rig")
	d.Rig.Type = "Group"
	d.Rig.Position = rl.Vector3{Y: 3, Z: 12}
	d.Rig.Rotation = rl.Vector3{X: -0.2}
	d.Camera = engine.NewPerspectiveCamera("camera", 50, opts.Aspect, 0.1, 500)
	d.Rig.AddChild(d.Camera)
	d.Scene.AddGameObject(d.Rig)
	d.Scene.SetCamera(d.Camera)

	floorMat := engine.NewMaterial("floor", rl.DarkGray)
	floorMat.Map = engine.NewTexture("checker", 256, 256)
	floorMat.Map.WrapS = enums.RepeatWrapping
	floorMat.Map.WrapT = enums.RepeatWrapping
	d.Floor = engine.NewMesh("floor", engine.NewBoxGeometry(20, 0.1, 20), floorMat)
	d.Floor.Position = rl.Vector3{Y: -0.05}
	d.Scene.AddGameObject(d.Floor)

	cubeMat := engine.NewMaterial("cube", rl.NewColor(108, 99, 255, 255))
	cubeMat.Transparent = true
	cubeMat.Opacity = 0.9
	d.Cube = engine.NewMesh("cube", engine.NewBoxGeometry(1, 1, 1), cubeMat)
	d.Cube.Position = rl.Vector3{Y: 1}
	d.Cube.Tags = []string{"spin"}
	d.Cube.AddComponent(&engine.Spin{Speed: rl.Vector3{Y: 0.6, Z: 0.2}})
	d.Scene.AddGameObject(d.Cube)

	moonMat := engine.NewMaterial("moon", rl.LightGray)
	moonMat.BlendEquation = enums.MaxEquation
	d.Moon = engine.NewMesh("moon", engine.NewSphereGeometry(0.3), moonMat)
	d.Moon.Position = rl.Vector3{X: 2.5, Y: 1}
	d.Moon.AddComponent(&engine.Orbit{Center: engine.RefTo(d.Cube), Radius: 2.5, Speed: 0.8})
	d.Scene.AddGameObject(d.Moon)

	d.Crates = engine.NewGameObject("crates")
	d.Crates.Type = "Group"
	d.Scene.AddGameObject(d.Crates)
	d.Spawn(opts.Objects)

	d.Scene.Start()
	d.Scene.UpdateMatrixWorld()
	return d
}

// Spawn adds n unnamed crates under the crates group at random spots on the
// floor. Crates have no name so the inspector labels them by host element.
func (d *Demo) Spawn(n int) []*engine.GameObject {
	out := make([]*engine.GameObject, 0, n)
	for range n {
		size := 0.3 + d.rng.Float32()*0.5
		mat := engine.NewMaterial("", rl.NewColor(uint8(d.rng.IntN(256)), uint8(d.rng.IntN(256)), uint8(d.rng.IntN(256)), 255))
		g := engine.NewMesh("", engine.NewBoxGeometry(size, size, size), mat)
		g.ElementID = "crate"
		g.Position = rl.Vector3{
			X: d.rng.Float32()*16 - 8,
			Y: size / 2,
			Z: d.rng.Float32()*16 - 8,
		}
		d.Crates.AddChild(g)
		g.Start()
		out = append(out, g)
	}
	if n > 0 {
		d.Scene.Changed.Invoke()
	}
	return out
}

// Despawn removes the most recently spawned crate. It reports false when no
// crate is left.
func (d *Demo) Despawn() bool {
	if len(d.Crates.Children) == 0 {
		return false
	}
	d.Scene.RemoveGameObject(d.Crates.Children[len(d.Crates.Children)-1])
	return true
}

// Update advances the components unless the demo is paused.
func (d *Demo) Update(dt float32) {
	if d.Settings.Paused {
		d.Scene.UpdateMatrixWorld()
		return
	}
	d.Scene.Update(dt * d.Settings.TimeScale)
}

// Inspect attaches the scene and the settings to sess. Scene changes rebuild
// the scene folder.
func (d *Demo) Inspect(sess *inspect.Session) (*panel.Panel, error) {
	p := sess.Attach(d.Scene)
	if p == nil {
		return nil, fmt.Errorf("demo: %w: scene %q was rejected", inspect.ErrNoCapability, d.Scene.Name)
	}
	sess.Inspect(d.Settings, "Settings")
	d.Scene.Changed.AddListener(sess.Refresh)
	return p, nil
}
