/*
 * Copyright (C) 2023 by Jason Figge
 */

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"ray-casting/internal"
	"ray-casting/internal/config"
)

func init() {
	// SDL event handling must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	flags := config.Flags(os.Args[0])
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path, flags)
	if err != nil {
		log.Fatal(err)
	}

	controller, err := internal.NewController(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = internal.Open(ctx, cfg.Screen.Title, cfg.Screen.Scale, cfg.Screen.FrameDelay, controller); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Game over")
}
