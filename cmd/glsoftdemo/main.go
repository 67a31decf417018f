// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command glsoftdemo renders a frame script, or a built-in rotating square,
// through the glsoft pipeline.
//
// With the image provider the last frame is written as PNG or BMP. With
// the terminal provider frames are shown in the terminal and the command
// waits for a key press before exiting.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/glsoft"
	"github.com/gogpu/glsoft/internal/config"
	"github.com/gogpu/glsoft/internal/frameio"
	"github.com/gogpu/glsoft/script"
	"github.com/gogpu/glsoft/surface"
	"github.com/gogpu/glsoft/surface/terminal"
	"github.com/gogpu/glsoft/surface/trace"
	"github.com/gogpu/glsoft/visual"
)

var errNoFrames = errors.New("script has no frames")

func main() {
	var (
		configPath  = flag.String("config", "", "TOML configuration file")
		scriptPath  = flag.String("script", "", "YAML frame script (default: built-in demo)")
		provider    = flag.String("provider", "", "surface provider: image or terminal (overrides config)")
		output      = flag.String("output", "", "output image for the image provider (overrides config)")
		tracePath   = flag.String("trace", "", "SQLite database recording draw calls (overrides config)")
		frames      = flag.Int("frames", 24, "frames of the built-in demo")
		interval    = flag.Duration("interval", 80*time.Millisecond, "delay between frames on the terminal")
		writeConfig = flag.String("write-config", "", "write the default configuration to this path and exit")
	)
	flag.Parse()

	if *writeConfig != "" {
		if err := config.Write(*writeConfig, config.Default()); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *provider != "" {
		cfg.Surface.Provider = *provider
	}
	if *output != "" {
		cfg.Output.Path = *output
	}
	if *tracePath != "" {
		cfg.Trace.Database = *tracePath
	}

	var sc *script.Script
	if *scriptPath != "" {
		if sc, err = script.Load(*scriptPath); err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		cfg.Surface.Width, cfg.Surface.Height = sc.Width, sc.Height
	} else {
		sc = demoScript(*frames, cfg.Surface.Width, cfg.Surface.Height)
	}

	if err := run(cfg, sc, *interval); err != nil {
		log.Fatalf("glsoftdemo: %v", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if def, err := config.DefaultPath(); err == nil {
		if _, statErr := os.Stat(def); statErr == nil {
			return config.Load(def)
		}
	}
	return config.Default(), nil
}

func run(cfg config.Config, sc *script.Script, interval time.Duration) error {
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	glsoft.SetLogger(logger)

	format, err := visual.Choose(cfg.Visual.AttribList())
	if err != nil {
		return fmt.Errorf("choose visual: %w", err)
	}

	opts := surface.Options{
		Width:      cfg.Surface.Width,
		Height:     cfg.Surface.Height,
		Antialias:  cfg.Surface.Antialias,
		Foreground: cfg.Surface.ForegroundColor(),
		Background: cfg.Surface.BackgroundColor(),
	}
	var (
		p      surface.Provider
		target surface.Handle
	)
	if cfg.Surface.Provider == "" {
		p, target, err = surface.NewSurface(opts)
	} else {
		p, target, err = surface.NewSurfaceByName(cfg.Surface.Provider, opts)
	}
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	base := p
	if c, ok := base.(io.Closer); ok {
		defer c.Close()
	}

	if cfg.Trace.Database != "" {
		tp, err := trace.Open(cfg.Trace.Database, base, trace.WithLogger(logger))
		if err != nil {
			return err
		}
		defer tp.Close()
		p = tp
	}

	ctx, err := glsoft.CreateContext(format, nil, glsoft.WithLabel("demo"))
	if err != nil {
		return err
	}
	defer ctx.Release()

	th := glsoft.NewRegistry().NewThread()
	if err := th.MakeCurrent(ctx, target, target); err != nil {
		return err
	}

	if len(sc.Frames) == 0 {
		return errNoFrames
	}
	_, onTerminal := base.(*terminal.Provider)
	var total glsoft.FrameStats
	n := 0
	for _, f := range sc.Frames {
		for range f.Times() {
			for _, cmd := range f.Commands() {
				if err := th.Submit(cmd); err != nil {
					return err
				}
			}
			stats, err := th.SwapBuffers(p, target)
			if err != nil {
				return fmt.Errorf("frame %d: %w", n, err)
			}
			total.Commands += stats.Commands
			total.Lines += stats.Lines
			total.Ignored += stats.Ignored
			n++
			if onTerminal && interval > 0 {
				time.Sleep(interval)
			}
		}
	}
	if err := th.MakeCurrent(nil, surface.Nil, surface.Nil); err != nil {
		return err
	}
	logger.Info("frames rendered", "frames", n, "commands", total.Commands,
		"lines", total.Lines, "ignored", total.Ignored, "format", format.String())

	switch base := base.(type) {
	case *surface.ImageProvider:
		return saveFrame(base, target, cfg.Output)
	case *terminal.Provider:
		waitForKey(base.Screen())
	}
	return nil
}

func saveFrame(images *surface.ImageProvider, target surface.Handle, out config.Output) error {
	img, err := images.Snapshot(target)
	if err != nil {
		return err
	}
	f, err := frameio.FormatFor(out.Path, out.Format)
	if err != nil {
		return err
	}
	if err := frameio.Save(out.Path, img, f); err != nil {
		return err
	}
	log.Printf("Frame saved to %s (%dx%d)\n", out.Path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func waitForKey(screen tcell.Screen) {
	for {
		switch screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
