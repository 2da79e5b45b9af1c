package demo

import (
	"bytes"
	"log/slog"
	"strconv"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspect3d/internal/engine"
	"inspect3d/internal/enums"
	"inspect3d/internal/inspect"
	"inspect3d/internal/panel"
)

func newSession(t *testing.T, opts Options) (*Demo, *inspect.Session, *panel.Panel) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := New(opts)
	sess := inspect.New(inspect.WithLogger(logger))
	p, err := d.Inspect(sess)
	require.NoError(t, err)
	return d, sess, p
}

func folderNames(f *panel.Folder) []string {
	var out []string
	for _, sub := range f.Folders() {
		out = append(out, sub.Label())
	}
	return out
}

func idOf(g *engine.GameObject) string {
	return strconv.FormatUint(g.UID, 10)
}

func TestDemoPanelLayout(t *testing.T) {
	_, sess, p := newSession(t, Options{Objects: 2, Seed: 1})

	assert.Equal(t, []string{"Scene", "Settings"}, folderNames(p.Root()))
	scene := sess.SceneFolder()
	assert.Equal(t, []string{"Scene", "Group", "PerspectiveCamera", "Mesh"}, folderNames(scene))
	assert.Equal(t, []string{"rig", "crates"}, folderNames(scene.Folder("Group")))
	assert.Equal(t, []string{"floor", "cube", "moon", "crate 1", "crate 2"}, folderNames(scene.Folder("Mesh")))
}

func TestBlendEquationRoundTrip(t *testing.T) {
	d, sess, _ := newSession(t, Options{})

	cube := sess.Walker().Folder(idOf(d.Cube))
	require.NotNil(t, cube)
	cube.Open(false)
	mat := inspect.LazyOf(cube.Folder().Folder("material"))
	require.NotNil(t, mat)
	mat.Open(false)

	eq := mat.Folder().Control("blendEquation")
	require.NotNil(t, eq)
	assert.Equal(t, panel.Choice, eq.Kind())
	assert.Equal(t, "Add", eq.Value())

	require.NoError(t, eq.SetValue("Min"))
	assert.Equal(t, enums.MinEquation, d.Cube.Material.BlendEquation)
	assert.Equal(t, "Min", eq.Value())
}

func TestTextureChangeFlagsUpload(t *testing.T) {
	d, sess, _ := newSession(t, Options{})

	floor := sess.Walker().Folder(idOf(d.Floor))
	floor.Open(false)
	mat := inspect.LazyOf(floor.Folder().Folder("material"))
	mat.Open(false)
	tex := inspect.LazyOf(mat.Folder().Folder("map"))
	require.NotNil(t, tex)
	tex.Open(false)

	version := d.Floor.Material.Map.Version
	require.NoError(t, tex.Folder().Control("wrapS").SetValue("MirroredRepeat"))
	assert.Equal(t, enums.MirroredRepeatWrapping, d.Floor.Material.Map.WrapS)
	assert.True(t, d.Floor.Material.Map.NeedsUpdate)
	assert.Equal(t, version+1, d.Floor.Material.Map.Version)
}

func TestMoveToGroupUsesFallbackDistance(t *testing.T) {
	d, sess, _ := newSession(t, Options{})
	d.Crates.Position = rl.Vector3{X: 4, Z: -3}
	d.Scene.UpdateMatrixWorld()

	m := d.Camera.WorldMatrix()
	camZ := rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})
	want := rl.Vector3Add(d.Crates.WorldPosition(), camZ)

	sess.MoveTo(d.Crates)
	sess.Update(2)

	got := d.Camera.WorldPosition()
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
	assert.InDelta(t, want.Z, got.Z, 1e-3)
	assert.Equal(t, idOf(d.Crates), sess.Cursor().ID())
	assert.Equal(t, rl.Vector3{}, d.Camera.Position, "the rig moves, the camera stays put in it")
}

func TestMoveToMeshUsesBoundingRadius(t *testing.T) {
	d, sess, _ := newSession(t, Options{})
	d.Cube.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	m := d.Camera.WorldMatrix()
	camZ := rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})
	radius := d.Cube.Geometry.BoundingSphere.Radius
	want := rl.Vector3Add(d.Cube.WorldPosition(), rl.Vector3Scale(camZ, radius*2*2))

	sess.MoveTo(d.Cube)
	sess.Update(2)

	got := d.Camera.WorldPosition()
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
	assert.InDelta(t, want.Z, got.Z, 1e-3)
}

func TestBrotherNavigation(t *testing.T) {
	d, sess, _ := newSession(t, Options{})

	sess.MoveTo(d.Floor)
	require.True(t, sess.MoveToNextBrother())
	assert.Equal(t, idOf(d.Cube), sess.Cursor().ID())
	require.True(t, sess.MoveToParent())
	assert.Equal(t, idOf(d.Scene.RootObject()), sess.Cursor().ID())
	assert.False(t, sess.MoveToParent())
	require.True(t, sess.MoveToFirstChild())
	assert.Equal(t, idOf(d.Rig), sess.Cursor().ID())
}

func TestRemovalUpdatesPanel(t *testing.T) {
	d, sess, _ := newSession(t, Options{Objects: 3, Seed: 7})
	mesh := sess.SceneFolder().Folder("Mesh")
	require.Len(t, mesh.Folders(), 6)

	last := d.Crates.Children[2]
	sess.MoveTo(last)
	require.True(t, d.Despawn())

	assert.Equal(t, "", sess.Cursor().ID())
	assert.Equal(t, []string{"floor", "cube", "moon", "crate 1", "crate 2"}, folderNames(mesh))
	assert.Nil(t, sess.Walker().Folder(idOf(last)))
}

func TestSpawnRefreshesPanel(t *testing.T) {
	d, sess, _ := newSession(t, Options{})
	assert.Nil(t, sess.SceneFolder().Folder("Mesh").Folder("crate 1"))

	d.Spawn(2)
	assert.Equal(t, []string{"floor", "cube", "moon", "crate 1", "crate 2"}, folderNames(sess.SceneFolder().Folder("Mesh")))
}

func TestSettingsAreEditable(t *testing.T) {
	d, _, p := newSession(t, Options{})
	settings := inspect.LazyOf(p.Root().Folder("Settings"))
	require.NotNil(t, settings)
	settings.Open(false)

	require.NoError(t, settings.Folder().Control("paused").SetValue(true))
	assert.True(t, d.Settings.Paused)

	pos := d.Cube.Rotation
	d.Update(1)
	assert.Equal(t, pos, d.Cube.Rotation, "a paused demo does not run components")

	require.NoError(t, settings.Folder().Control("paused").SetValue(false))
	d.Update(1)
	assert.NotEqual(t, pos, d.Cube.Rotation)
}

func TestPositionOpenAttachesGizmo(t *testing.T) {
	d, sess, _ := newSession(t, Options{})
	moon := sess.Walker().Folder(idOf(d.Moon))
	moon.Open(false)
	pos := inspect.LazyOf(moon.Folder().Folder("position"))
	require.NotNil(t, pos)
	pos.Open(false)

	require.True(t, sess.Gizmo().Attached())
	assert.Same(t, &d.Moon.Position, sess.Gizmo().Value())

	d.Scene.RemoveGameObject(d.Moon)
	assert.False(t, sess.Gizmo().Attached(), "removing the node drops the gizmo")
}
