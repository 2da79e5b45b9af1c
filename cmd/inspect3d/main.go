package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	flag "github.com/spf13/pflag"

	"inspect3d/internal/config"
	"inspect3d/internal/demo"
	"inspect3d/internal/engine"
	"inspect3d/internal/inspect"
	"inspect3d/internal/logx"
	"inspect3d/internal/ui"
)

func main() {
	configPath := flag.StringP("config", "c", "", "inspector config file (toml, yaml or json)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error; overrides the config")
	logFile := flag.String("log-file", "", "append logs to this file instead of stderr")
	objects := flag.IntP("objects", "n", 3, "extra crates spawned at start")
	seed := flag.Uint64("seed", 1, "crate placement seed")
	flag.Parse()

	if err := run(*configPath, *logLevel, *logFile, *objects, *seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, logFile string, objects int, seed uint64) error {
	cfg := config.Default()
	var cfgErr error
	if configPath != "" {
		cfg, cfgErr = config.Load(configPath)
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	logger, closeLog, err := logx.Open(logFile, logLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logx.SetDefault(logger)
	if cfgErr != nil {
		logger.Warn("using default config", "path", configPath, "err", cfgErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reload := make(chan config.Config, 1)
	if configPath != "" {
		go func() {
			if err := config.Watch(ctx, configPath, reload); err != nil {
				logger.Error("config watch stopped", "err", err)
			}
		}()
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "inspect3d")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	ui.InitStyle()

	d := demo.New(demo.Options{Objects: objects, Seed: seed, Aspect: 1280.0 / 720.0})
	sess := inspect.New(inspect.WithConfig(cfg), inspect.WithLogger(logger))
	p, err := d.Inspect(sess)
	if err != nil {
		return err
	}
	overlay := ui.NewOverlay(logger)
	fly := ui.NewFlyRig()
	logger.Info("inspecting", "scene", d.Scene.Name, "objects", objects)

	for !rl.WindowShouldClose() {
		select {
		case next := <-reload:
			sess.Reconfigure(next)
			logger.Info("config applied", "path", configPath)
		default:
		}

		dt := rl.GetFrameTime()
		d.Update(dt)
		sess.Update(dt)

		if !overlay.Editing() {
			ui.HandleKeys(sess)
			handleDemoKeys(d, logger)
		}
		if in, ok := ui.ReadFly(overlay); ok {
			fly.Apply(d.Rig, in, dt)
		} else {
			ui.DriveGizmo(sess.Gizmo(), engine.RaylibCamera(d.Camera), overlay)
		}

		rl.BeginDrawing()
		rl.ClearBackground(d.Settings.Background)
		drawn := ui.DrawScene(d.Scene, d.Settings, sess.Gizmo())
		overlay.Draw(p, "inspect3d")
		rl.DrawFPS(10, 10)
		rl.DrawText(fmt.Sprintf("%d meshes", drawn), 10, 34, 16, rl.LightGray)
		rl.EndDrawing()
	}
	return nil
}

// handleDemoKeys spawns and removes crates so the panel can be seen
// following the scene.
func handleDemoKeys(d *demo.Demo, logger *slog.Logger) {
	switch {
	case rl.IsKeyPressed(rl.KeyInsert):
		d.Spawn(1)
		logger.Debug("crate spawned", "crates", len(d.Crates.Children))
	case rl.IsKeyPressed(rl.KeyDelete):
		if d.Despawn() {
			logger.Debug("crate removed", "crates", len(d.Crates.Children))
		}
	case rl.IsKeyPressed(rl.KeyP):
		d.Settings.Paused = !d.Settings.Paused
	}
}
