package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"inspect3d/internal/config"
	"inspect3d/internal/demo"
	"inspect3d/internal/inspect"
	"inspect3d/internal/logx"
	"inspect3d/internal/tui"
)

func main() {
	configPath := flag.StringP("config", "c", "", "inspector config file (toml, yaml or json)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error; overrides the config")
	logFile := flag.String("log-file", "inspect-tui.log", "append logs to this file")
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
	// The terminal belongs to the UI, so logs never go to stderr.
	if logFile == "" {
		logFile = os.DevNull
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
	var reload chan config.Config
	if configPath != "" {
		reload = make(chan config.Config, 1)
		go func() {
			if err := config.Watch(ctx, configPath, reload); err != nil {
				logger.Error("config watch stopped", "err", err)
			}
		}()
	}

	d := demo.New(demo.Options{Objects: objects, Seed: seed})
	sess := inspect.New(inspect.WithConfig(cfg), inspect.WithLogger(logger))
	if _, err := d.Inspect(sess); err != nil {
		return err
	}

	m := tui.New(sess, "inspect3d · "+d.Scene.Name, d, reload)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("inspect-tui: %w", err)
	}
	return nil
}
