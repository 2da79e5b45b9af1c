package inspect

import (
	"bytes"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspect3d/internal/config"
	"inspect3d/internal/panel"
)

type navFixture struct {
	scene *fakeScene
	nodes map[string]*fakeNode
	nav   *Navigation
	tw    *instant
	log   *bytes.Buffer
	panel *panel.Panel
}

func newNav(t *testing.T) *navFixture {
	t.Helper()
	scene, nodes := newScene()
	logger, buf := bufferLogger()
	w := NewWalker(NewClassifier(nil, logger), logger)
	p := panel.New("test")
	require.NoError(t, w.Build(p.Root(), scene))
	tw := &instant{}
	nav := NewNavigation(w, tw, logger)
	nav.SetScene(scene)
	return &navFixture{scene: scene, nodes: nodes, nav: nav, tw: tw, log: buf, panel: p}
}

func nearVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-4, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-4, "z")
}

func TestMoveToFallbackDistance(t *testing.T) {
	f := newNav(t)
	target := f.nodes["a"]
	target.Position = rl.Vector3{X: 5}

	require.NotPanics(t, func() { f.nav.MoveTo(target) })

	// group sits at the origin, the camera looks down -Z from the origin
	nearVec(t, rl.Vector3{X: 5, Z: 1}, f.nodes["camera"].Position)
	assert.Equal(t, 1, f.tw.calls)
	assert.Equal(t, time.Second, f.tw.last)
	assert.Equal(t, 1, f.scene.updates)
	assert.Equal(t, "4", f.nav.Cursor().ID())
}

func TestMoveToBoundingRadius(t *testing.T) {
	f := newNav(t)
	target := f.nodes["b"]
	target.Geometry = true
	target.Radius = 2
	target.Scale = 3
	target.Position = rl.Vector3{Y: 1}

	f.nav.MoveTo(target)
	// (2 + 0) * 3 * 2
	nearVec(t, rl.Vector3{Y: 1, Z: 12}, f.nodes["camera"].Position)
}

func TestMoveToMovesRig(t *testing.T) {
	f := newNav(t)
	root, cam := f.nodes["root"], f.nodes["camera"]
	rig := node("7", "Group", "rig")
	rig.Position = rl.Vector3{X: 10}
	root.kids = root.kids[1:]
	cam.parent = nil
	root.add(rig.add(cam))
	cam.Position = rl.Vector3{Y: 2}

	f.nav.MoveTo(f.nodes["a"])
	nearVec(t, rl.Vector3{Y: -2, Z: 1}, rig.Position)
	nearVec(t, rl.Vector3{Y: 2}, cam.Position)
	nearVec(t, rl.Vector3{Z: 1}, worldPosition(cam))
}

func TestMoveToWithoutCamera(t *testing.T) {
	f := newNav(t)
	f.scene.camera = nil
	require.NotPanics(t, func() { f.nav.MoveTo(f.nodes["a"]) })
	assert.Equal(t, 0, f.tw.calls)
	assert.Equal(t, "4", f.nav.Cursor().ID())
}

func TestLocate(t *testing.T) {
	f := newNav(t)
	f.nodes["camera"].Position = rl.Vector3{Z: 10}
	target := f.nodes["c"]
	target.Position = rl.Vector3{X: 3}
	target.Geometry = true
	target.Radius = 0.5

	f.nav.Locate(target)
	box, arrow := f.nav.Highlight(), f.nav.Indicator()
	require.NotNil(t, box)
	require.NotNil(t, arrow)
	assert.Same(t, box, f.scene.highlight)
	assert.Same(t, arrow, f.scene.indicator)
	assert.Equal(t, box.Color, arrow.Color)

	nearVec(t, rl.Vector3{X: 2.5, Y: -0.5, Z: -0.5}, box.Min)
	nearVec(t, rl.Vector3{X: 3.5, Y: 0.5, Z: 0.5}, box.Max)
	nearVec(t, rl.Vector3{Z: 9.99}, arrow.Origin)
	nearVec(t, rl.Vector3{X: 3}, arrow.Tip())

	prev := box
	f.nav.Locate(f.nodes["a"])
	assert.NotSame(t, prev, f.nav.Highlight(), "locate replaces the previous highlight")
	assert.Equal(t, f.nav.Highlight().Min, f.nav.Highlight().Max, "no geometry gives a degenerate box")
}

func TestNextBrotherOnLastChild(t *testing.T) {
	f := newNav(t)
	f.nav.MoveTo(f.nodes["c"])
	calls := f.tw.calls

	assert.False(t, f.nav.MoveToNextBrother())
	assert.Contains(t, f.log.String(), "No next brother")
	assert.Equal(t, "6", f.nav.Cursor().ID())
	assert.Equal(t, calls, f.tw.calls)
}

func TestRelativeMoves(t *testing.T) {
	f := newNav(t)
	assert.False(t, f.nav.MoveToParent())
	assert.Contains(t, f.log.String(), "No focused node")

	f.nav.MoveTo(f.nodes["b"])
	require.True(t, f.nav.MoveToPreviousBrother())
	assert.Equal(t, "4", f.nav.Cursor().ID())

	assert.False(t, f.nav.MoveToPreviousBrother())
	assert.Contains(t, f.log.String(), "No previous brother")

	require.True(t, f.nav.MoveToNextBrother())
	assert.Equal(t, "5", f.nav.Cursor().ID())

	require.True(t, f.nav.MoveToParent())
	assert.Equal(t, "3", f.nav.Cursor().ID())

	require.True(t, f.nav.MoveToFirstChild())
	assert.Equal(t, "4", f.nav.Cursor().ID())

	assert.False(t, f.nav.MoveToFirstChild())
	assert.Contains(t, f.log.String(), "No child")

	f.nav.MoveTo(f.nodes["group"])
	require.True(t, f.nav.MoveToParent())
	assert.Equal(t, "1", f.nav.Cursor().ID())
	assert.False(t, f.nav.MoveToParent())
	assert.Contains(t, f.log.String(), "No parent")
	assert.Equal(t, "1", f.nav.Cursor().ID())
}

func TestParentOfDetachedNodeIsRoot(t *testing.T) {
	f := newNav(t)
	loose := f.nodes["group"]
	f.nodes["root"].kids = f.nodes["root"].kids[:1]
	loose.parent = nil

	f.nav.MoveTo(loose)
	require.True(t, f.nav.MoveToParent())
	assert.Equal(t, "1", f.nav.Cursor().ID())
}

func TestCursorForgetsRemovedNode(t *testing.T) {
	f := newNav(t)
	f.nav.MoveTo(f.nodes["b"])
	f.scene.remove(f.nodes["b"])

	assert.Nil(t, f.nav.Cursor().Node())
	assert.False(t, f.nav.MoveToNextBrother())
	assert.Contains(t, f.log.String(), "No focused node")
}

func TestMoveToMarksFolder(t *testing.T) {
	f := newNav(t)
	f.nav.MoveTo(f.nodes["b"])
	opened := f.panel.Opened()
	require.NotNil(t, opened)
	assert.Equal(t, "b", opened.Label())
	assert.Equal(t, panel.HighlightParent, opened.Parent().Highlight())
}

func TestHandleKey(t *testing.T) {
	f := newNav(t)
	f.nav.MoveTo(f.nodes["a"])

	assert.False(t, f.nav.HandleKey(KeyRight, 0), "modifier is required")
	assert.Equal(t, "4", f.nav.Cursor().ID())

	assert.True(t, f.nav.HandleKey(KeyRight, ModShift))
	assert.Equal(t, "5", f.nav.Cursor().ID())
	assert.True(t, f.nav.HandleKey("UP", ModShift|ModCtrl))
	assert.Equal(t, "3", f.nav.Cursor().ID())
	assert.False(t, f.nav.HandleKey("q", ModShift))
}

func TestBindingsFrom(t *testing.T) {
	b, err := BindingsFrom(config.Navigation{Modifier: "ctrl", Parent: "w", FirstChild: "s"})
	require.NoError(t, err)
	assert.Equal(t, ModCtrl, b.Modifier)
	assert.Equal(t, Key("w"), b.Parent)
	assert.Equal(t, Key("s"), b.FirstChild)
	assert.Equal(t, KeyLeft, b.PreviousBrother)

	_, err = BindingsFrom(config.Navigation{Modifier: "hyper"})
	assert.ErrorContains(t, err, "hyper")
}
