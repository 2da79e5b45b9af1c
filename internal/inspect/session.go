// Package inspect turns live Go values and scene graphs into a tree of
// lazily built panel folders.
package inspect

import (
	"fmt"
	"log/slog"
	"reflect"

	"inspect3d/internal/config"
	"inspect3d/internal/gizmo"
	"inspect3d/internal/panel"
	"inspect3d/internal/tween"
)

const panelTitle = "inspect3d"

// Session is one inspection: a single panel, the attached scene, and the
// focus state shared by every folder in it.
type Session struct {
	*Navigation

	cfg        config.Config
	logger     *slog.Logger
	panel      *panel.Panel
	classifier *Classifier
	walker     *Walker
	gizmo      *gizmo.Transform
	tweener    Tweener

	scene       SceneGraph
	sceneFolder *panel.Folder
	watched     map[RemovalNotifier]bool
	objects     int
}

type Option func(*Session)

func WithConfig(cfg config.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTweener replaces the built-in tweener. The host then advances it.
func WithTweener(tw Tweener) Option {
	return func(s *Session) { s.tweener = tw }
}

func New(opts ...Option) *Session {
	s := &Session{
		cfg:     config.Default(),
		logger:  slog.Default(),
		gizmo:   gizmo.NewTransform(),
		watched: map[RemovalNotifier]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		s.logger.Error("config rejected, using defaults", "err", err)
		s.cfg = config.Default()
	}
	if s.tweener == nil {
		s.tweener = tween.New(nil)
	}
	s.classifier = NewClassifier(s.cfg.Hidden, s.logger)
	s.walker = NewWalker(s.classifier, s.logger)
	s.Navigation = NewNavigation(s.walker, s.tweener, s.logger)
	s.classifier.SetNavigator(s.Navigation)
	s.classifier.SetGizmo(s.gizmo)
	s.Reconfigure(s.cfg)
	return s
}

func (s *Session) Panel() *panel.Panel        { return s.panel }
func (s *Session) Gizmo() *gizmo.Transform    { return s.gizmo }
func (s *Session) Classifier() *Classifier    { return s.classifier }
func (s *Session) Walker() *Walker            { return s.walker }
func (s *Session) Scene() SceneGraph          { return s.scene }
func (s *Session) Config() config.Config      { return s.cfg }
func (s *Session) Logger() *slog.Logger       { return s.logger }
func (s *Session) SceneFolder() *panel.Folder { return s.sceneFolder }

// Update advances the built-in tweener. Hosts that passed their own tweener
// advance it themselves.
func (s *Session) Update(dt float32) {
	if u, ok := s.tweener.(interface{ Update(float32) }); ok {
		u.Update(dt)
	}
}

// Reconfigure applies a reloaded config. The scene folder is rebuilt when
// its name changed.
func (s *Session) Reconfigure(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		s.logger.Error("config rejected", "err", err)
		return
	}
	old := s.cfg.SceneFolder
	s.cfg = cfg
	s.classifier.SetHidden(cfg.Hidden)
	s.SetDuration(cfg.Tween.Duration())
	s.SetFallbackDistance(float32(cfg.FallbackDistance))
	if tw, ok := s.tweener.(*tween.Tweener); ok {
		ease, _ := tween.Lookup(cfg.Tween.Easing)
		tw.SetEasing(ease)
	}
	b, err := BindingsFrom(cfg.Navigation)
	if err != nil {
		s.logger.Warn("navigation keys rejected, keeping defaults", "err", err)
	}
	s.SetBindings(b)

	if s.sceneFolder != nil && old != cfg.SceneFolder {
		_ = s.panel.Root().Remove(s.sceneFolder)
		s.sceneFolder = nil
		s.Refresh()
	}
}

func (s *Session) ensurePanel() *panel.Panel {
	if s.panel == nil {
		s.panel = panel.New(panelTitle)
	}
	return s.panel
}

// Attach shows a scene under the scene folder. It logs and returns nil when
// target is not a scene with a root and a camera.
func (s *Session) Attach(target any) *panel.Panel {
	scene, ok := target.(SceneGraph)
	if !ok {
		s.logger.Error("attach failed", "err", fmt.Errorf("%w: %T is not a scene", ErrNoCapability, target))
		return nil
	}
	if err := checkScene(scene); err != nil {
		s.logger.Error("attach failed", "err", err)
		return nil
	}
	return s.attach(scene, s.cfg.SceneFolder)
}

func checkScene(scene SceneGraph) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNoCapability, r)
		}
	}()
	if scene.Root() == nil {
		return fmt.Errorf("%w: scene has no root", ErrNoCapability)
	}
	if scene.Camera() == nil {
		return fmt.Errorf("%w: scene has no camera", ErrNoCapability)
	}
	return nil
}

func (s *Session) attach(scene SceneGraph, name string) *panel.Panel {
	p := s.ensurePanel()
	f, err := p.Root().EnsureFolder(name)
	if err != nil {
		s.logger.Error("attach failed", "err", err)
		return nil
	}
	if s.sceneFolder != nil && s.sceneFolder != f {
		_ = p.Root().Remove(s.sceneFolder)
	}
	s.scene = scene
	s.sceneFolder = f
	s.SetScene(scene)
	if rn, ok := scene.(RemovalNotifier); ok && !s.watched[rn] {
		s.watched[rn] = true
		rn.OnRemoved(s.nodeRemoved)
	}
	s.Refresh()
	return p
}

// Refresh rebuilds the scene folder from the live scene graph.
func (s *Session) Refresh() {
	if s.scene == nil {
		return
	}
	if s.sceneFolder == nil {
		f, err := s.ensurePanel().Root().EnsureFolder(s.cfg.SceneFolder)
		if err != nil {
			s.logger.Error("scene folder", "err", err)
			return
		}
		s.sceneFolder = f
	}
	if err := s.walker.Build(s.sceneFolder, s.scene); err != nil {
		s.logger.Error("scene walk failed", "err", err)
	}
}

func (s *Session) nodeRemoved(n Node) {
	id := s.walker.IdentityOf(n)
	if s.Cursor().ID() == id {
		s.Cursor().Clear()
	}
	if s.gizmo.Attached() && belongsTo(s.gizmo.Value(), n) {
		s.gizmo.Detach()
	}
	s.walker.Forget(n)
}

// belongsTo reports whether p points into the inspectable value of n.
func belongsTo(p any, n Node) bool {
	target := reflect.ValueOf(n.Inspectable())
	pv := reflect.ValueOf(p)
	if target.Kind() != reflect.Pointer || pv.Kind() != reflect.Pointer || target.IsNil() || pv.IsNil() {
		return false
	}
	start := target.Pointer()
	end := start + target.Elem().Type().Size()
	addr := pv.Pointer()
	return addr >= start && addr < end
}

// Inspect shows target in its own folder. Scenes go through Attach; any other
// value gets a lazy folder named name, or "Object <n>" when name is omitted.
func (s *Session) Inspect(target any, name ...string) *panel.Panel {
	if scene, ok := target.(SceneGraph); ok {
		if err := checkScene(scene); err == nil {
			folder := s.cfg.SceneFolder
			if len(name) > 0 && name[0] != "" {
				folder = name[0]
			}
			return s.attach(scene, folder)
		}
	}
	label := ""
	if len(name) > 0 {
		label = name[0]
	}
	if label == "" {
		s.objects++
		label = fmt.Sprintf("Object %d", s.objects)
	}
	p := s.ensurePanel()
	ctx := FieldContext{}
	if n, ok := target.(Node); ok {
		ctx.Node = n
		target = n.Inspectable()
	}
	v := reflect.ValueOf(target)
	lf, err := EnsureFolder(label, p.Root(), target, func(f *panel.Folder, reveal bool) {
		s.classifier.Populate(f, ctx, v, reveal)
	})
	if err != nil {
		s.logger.Error("inspect failed", "name", label, "err", err)
		return p
	}
	lf.SetLogger(s.logger)
	return p
}
