/*
 * Copyright (C) 2023 by Jason Figge
 */

package player

import (
	"math"
)

const (
	TwoPi = 2 * math.Pi

	DefaultTurnRate  = 0.1
	DefaultMoveSpeed = 0.4
)

// State is the player pose in map-cell units. Heading is radians in [0, 2π),
// with heading 0 facing +Y.
type State struct {
	X       float64
	Y       float64
	Heading float64
}

// Input is the set of movement keys held during one frame.
type Input struct {
	RotateLeft  bool
	RotateRight bool
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
}

// Tuning holds per-frame rates. Collide enables wall blocking for moves.
type Tuning struct {
	TurnRate  float64
	MoveSpeed float64
	Collide   bool
}

// Blocker answers wall queries for collision. *tilemap.Map satisfies it.
type Blocker interface {
	InBounds(x, y int) bool
	IsWall(x, y int) bool
}

func DefaultTuning() Tuning {
	return Tuning{TurnRate: DefaultTurnRate, MoveSpeed: DefaultMoveSpeed}
}

func New(x, y, heading float64) State {
	return State{X: x, Y: y, Heading: Normalize(heading)}
}

// Normalize wraps an angle into [0, 2π).
func Normalize(angle float64) float64 {
	a := math.Mod(angle, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Forward is the unit vector of the current heading.
func (s State) Forward() (float64, float64) {
	return math.Sin(s.Heading), math.Cos(s.Heading)
}

// Rotate turns by delta, wrapping around past either bound.
func (s State) Rotate(delta float64) State {
	s.Heading = Normalize(s.Heading + delta)
	return s
}

// Advance moves along the heading. Negative distances move backwards.
// No wall or bounds checks are made.
func (s State) Advance(distance float64) State {
	dx, dy := s.Forward()
	s.X += dx * distance
	s.Y += dy * distance
	return s
}

// Strafe moves perpendicular to the heading, positive to the right.
func (s State) Strafe(distance float64) State {
	s.X += math.Cos(s.Heading) * distance
	s.Y -= math.Sin(s.Heading) * distance
	return s
}

// Update applies one frame of input and returns the new pose.
func Update(s State, in Input, t Tuning, walls Blocker) State {
	if in.RotateLeft {
		s = s.Rotate(-t.TurnRate)
	}
	if in.RotateRight {
		s = s.Rotate(t.TurnRate)
	}

	if in.Forward {
		s = move(s, s.Advance(t.MoveSpeed), t, walls)
	}
	if in.Backward {
		s = move(s, s.Advance(-t.MoveSpeed), t, walls)
	}
	if in.StrafeLeft {
		s = move(s, s.Strafe(-t.MoveSpeed), t, walls)
	}
	if in.StrafeRight {
		s = move(s, s.Strafe(t.MoveSpeed), t, walls)
	}
	return s
}

func move(from, to State, t Tuning, walls Blocker) State {
	if !t.Collide || walls == nil {
		return to
	}
	x, y := int(math.Floor(to.X)), int(math.Floor(to.Y))
	if walls.InBounds(x, y) && walls.IsWall(x, y) {
		return from
	}
	return to
}
