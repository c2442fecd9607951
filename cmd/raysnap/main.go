/*
 * Copyright (C) 2023 by Jason Figge
 */

// Raysnap renders a forward walk through the configured map without a window
// and writes every frame as a PNG.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"

	"ray-casting/internal/config"
	"ray-casting/internal/render"
	"ray-casting/internal/snapshot"
)

func main() {
	flags := config.Flags(os.Args[0])
	frames := flags.Int("frames", 30, "number of frames to walk forward")
	out := flags.String("out", "frames", "output directory")
	encoders := flags.Int("encoders", runtime.NumCPU(), "concurrent PNG encoders")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path, flags)
	if err != nil {
		log.Fatal(err)
	}
	world, err := cfg.TileMap()
	if err != nil {
		log.Fatal(err)
	}
	palette, err := cfg.Palette()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	r := &render.Renderer{
		Params:  cfg.CasterParams(),
		Height:  cfg.Screen.Height,
		Palette: palette,
		Workers: cfg.Screen.Workers,
	}
	walk, err := snapshot.Walk(ctx, r, world, cfg.Start(), cfg.Tuning(), snapshot.Forward(*frames))
	if err != nil {
		log.Fatal(err)
	}

	paths, err := snapshot.WritePNGs(*out, walk, *encoders)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d frames to %s", len(paths), *out)
}
