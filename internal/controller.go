/*
 * Copyright (C) 2023 by Jason Figge
 */

package internal

import (
	"context"
	"log"

	"ray-casting/internal/config"
	"ray-casting/internal/player"
	"ray-casting/internal/render"
	"ray-casting/internal/tilemap"

	"github.com/veandco/go-sdl2/sdl"
)

type Controller struct {
	world    *tilemap.Map
	start    player.State
	player   player.State
	tuning   player.Tuning
	renderer *render.Renderer
	frame    *render.FrameBuffer
	running  bool
}

func NewController(cfg *config.Config) (*Controller, error) {
	world, err := cfg.TileMap()
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		world:  world,
		start:  cfg.Start(),
		player: cfg.Start(),
		tuning: cfg.Tuning(),
		renderer: &render.Renderer{
			Params:  cfg.CasterParams(),
			Height:  cfg.Screen.Height,
			Palette: palette,
			Workers: cfg.Screen.Workers,
		},
		frame:   render.NewFrameBuffer(cfg.Screen.Width, cfg.Screen.Height),
		running: true,
	}
	log.Printf("map %dx%d, screen %dx%d, player at (%.2f,%.2f) heading %.2f",
		world.Width(), world.Height(), cfg.Screen.Width, cfg.Screen.Height,
		c.player.X, c.player.Y, c.player.Heading)
	return c, nil
}

func (c *Controller) Running() bool              { return c.running }
func (c *Controller) Quit()                      { c.running = false }
func (c *Controller) Player() player.State       { return c.player }
func (c *Controller) Frame() *render.FrameBuffer { return c.frame }

// Events handles discrete key presses. Held movement keys are polled in OnUpdate.
func (c *Controller) Events(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		c.Quit()
		return true
	case *sdl.KeyboardEvent:
		return c.keyboardEvent(e)
	}
	return false
}

func (c *Controller) keyboardEvent(event *sdl.KeyboardEvent) bool {
	if event.State != sdl.PRESSED {
		return false
	}
	switch event.Keysym.Scancode {
	case sdl.SCANCODE_Q, sdl.SCANCODE_ESCAPE:
		c.Quit()
	case sdl.SCANCODE_R:
		c.player = c.start
	default:
		return false
	}
	return true
}

// OnUpdate advances the player by one frame of the held keys.
func (c *Controller) OnUpdate(codes []uint8) {
	c.player = player.Update(c.player, ReadInput(codes), c.tuning, c.world)
}

// OnDraw renders the current view into the frame buffer.
func (c *Controller) OnDraw(ctx context.Context) error {
	return c.renderer.Draw(ctx, c.player, c.world, c.frame)
}

// ReadInput maps a keyboard state to movement: W/S move, A/D turn, and with
// shift held A/D strafe instead.
func ReadInput(codes []uint8) player.Input {
	down := func(code sdl.Scancode) bool {
		return int(code) < len(codes) && codes[code] == 1
	}

	in := player.Input{
		Forward:  down(sdl.SCANCODE_W) || down(sdl.SCANCODE_UP),
		Backward: down(sdl.SCANCODE_S) || down(sdl.SCANCODE_DOWN),
	}
	left := down(sdl.SCANCODE_A) || down(sdl.SCANCODE_LEFT)
	right := down(sdl.SCANCODE_D) || down(sdl.SCANCODE_RIGHT)
	if down(sdl.SCANCODE_LSHIFT) || down(sdl.SCANCODE_RSHIFT) {
		in.StrafeLeft, in.StrafeRight = left, right
	} else {
		in.RotateLeft, in.RotateRight = left, right
	}
	return in
}
