/*
 * Copyright (C) 2023 by Jason Figge
 */

package internal

import (
	"context"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// ErrorTrap panics on SDL failures; nothing downstream of a broken window can recover.
func ErrorTrap(err error) {
	if err != nil {
		panic(err)
	}
}

// Open runs the window loop until the controller quits or ctx is done. The
// frame buffer is stretched by scale onto the window and each frame is
// followed by frameDelay. Must be called on the main OS thread.
func Open(ctx context.Context, title string, scale int, frameDelay time.Duration, c *Controller) error {
	ErrorTrap(sdl.Init(sdl.INIT_VIDEO))
	defer sdl.Quit()

	width, height := c.Frame().Width(), c.Frame().Height()
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width*scale), int32(height*scale), sdl.WINDOW_SHOWN)
	ErrorTrap(err)
	defer func() { ErrorTrap(window.Destroy()) }()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	ErrorTrap(err)
	defer func() { ErrorTrap(renderer.Destroy()) }()

	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA8888), sdl.TEXTUREACCESS_STREAMING,
		int32(width), int32(height))
	ErrorTrap(err)
	defer func() { ErrorTrap(texture.Destroy()) }()

	for c.Running() {
		if ctx.Err() != nil {
			return nil
		}
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			c.Events(event)
		}

		c.OnUpdate(sdl.GetKeyboardState())
		if err = c.OnDraw(ctx); err != nil {
			return err
		}

		ErrorTrap(texture.UpdateRGBA(nil, c.Frame().Pixels(), width))
		ErrorTrap(renderer.Copy(texture, nil, nil))
		renderer.Present()
		sdl.Delay(uint32(frameDelay / time.Millisecond))
	}
	return nil
}
