/*
 * Copyright (C) 2023 by Jason Figge
 */

package caster

import (
	"errors"
	"fmt"
	"math"

	"ray-casting/internal/player"
	"ray-casting/internal/tilemap"
)

const (
	DefaultFieldOfView = math.Pi / 4
	DefaultMaxDepth    = 16.0
	DefaultStepSize    = 0.1
)

var ErrInvalidParams = errors.New("invalid ray caster params")

// Params configures the fixed-step ray march for one screen.
type Params struct {
	FieldOfView float64
	MaxDepth    float64
	StepSize    float64
	ScreenWidth int
}

// Ray is the result of marching one screen column.
type Ray struct {
	Angle    float64
	DirX     float64
	DirY     float64
	Distance float64
	Hit      bool
}

func DefaultParams(screenWidth int) Params {
	return Params{
		FieldOfView: DefaultFieldOfView,
		MaxDepth:    DefaultMaxDepth,
		StepSize:    DefaultStepSize,
		ScreenWidth: screenWidth,
	}
}

func (p Params) Validate() error {
	switch {
	case !(p.FieldOfView > 0):
		return fmt.Errorf("%w: field of view %v must be positive", ErrInvalidParams, p.FieldOfView)
	case !(p.StepSize > 0):
		return fmt.Errorf("%w: step size %v must be positive", ErrInvalidParams, p.StepSize)
	case !(p.MaxDepth >= p.StepSize) || math.IsInf(p.MaxDepth, 0):
		return fmt.Errorf("%w: max depth %v must be finite and at least the step size %v", ErrInvalidParams, p.MaxDepth, p.StepSize)
	case p.ScreenWidth <= 0:
		return fmt.Errorf("%w: screen width %d must be positive", ErrInvalidParams, p.ScreenWidth)
	}
	return nil
}

// ColumnAngle spreads the field of view across the screen, left edge first.
func (p Params) ColumnAngle(heading float64, x int) float64 {
	return heading - p.FieldOfView/2 + (float64(x)/float64(p.ScreenWidth))*p.FieldOfView
}

// Cast returns the distance to the first wall along column x, or MaxDepth when
// the ray finds nothing in range or leaves the map.
func (p Params) Cast(s player.State, m *tilemap.Map, x int) float64 {
	return p.CastRay(s, m, x).Distance
}

// CastRay marches column x in StepSize increments. The first sample sits at
// StepSize, so a wall in the player's own cell reads as StepSize, never zero.
func (p Params) CastRay(s player.State, m *tilemap.Map, x int) Ray {
	angle := p.ColumnAngle(s.Heading, x)
	r := Ray{
		Angle:    angle,
		DirX:     math.Sin(angle),
		DirY:     math.Cos(angle),
		Distance: p.MaxDepth,
	}
	if !(p.StepSize > 0) || !(p.MaxDepth > 0) {
		return r
	}

	width, height := float64(m.Width()), float64(m.Height())
	for i := 1; float64(i-1)*p.StepSize < p.MaxDepth; i++ {
		distance := float64(i) * p.StepSize

		testX := math.Floor(s.X + r.DirX*distance)
		testY := math.Floor(s.Y + r.DirY*distance)
		if !(testX >= 0 && testX < width && testY >= 0 && testY < height) {
			// Escaped the world, render as far as we can see.
			return r
		}

		if m.IsWall(int(testX), int(testY)) {
			r.Hit = true
			r.Distance = math.Min(distance, p.MaxDepth)
			return r
		}
	}
	return r
}

// CastAll casts every column of the screen, left to right.
func (p Params) CastAll(s player.State, m *tilemap.Map) []Ray {
	rays := make([]Ray, p.ScreenWidth)
	for x := range rays {
		rays[x] = p.CastRay(s, m, x)
	}
	return rays
}
