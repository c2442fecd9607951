/*
 * Copyright (C) 2023 by Jason Figge
 */

package projector

import (
	"math"
)

// Color is packed 0xRRGGBBAA.
type Color uint32

const (
	Black    = Color(0x000000FF)
	White    = Color(0xFFFFFFFF)
	DarkGrey = Color(0x404040FF)
)

// Epsilon stands in for non-positive distances so the projection never divides by zero.
const Epsilon = 1e-6

func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// Scale multiplies the RGB channels by f in [0,1], leaving alpha untouched.
func (c Color) Scale(f float64) Color {
	f = math.Max(0, math.Min(1, f))
	return RGBA(
		uint8(float64(c.R())*f),
		uint8(float64(c.G())*f),
		uint8(float64(c.B())*f),
		c.A(),
	)
}

// FMap maps v linearly from [a1,a2] onto [b1,b2].
func FMap(v, a1, a2, b1, b2 float64) float64 {
	return b1 + (v-a1)*(b2-b1)/(a2-a1)
}

type Band uint8

const (
	Ceiling Band = iota
	WallBand
	Floor
)

// Span splits one column into ceiling [0,CeilingEnd), wall [CeilingEnd,WallEnd)
// and floor [WallEnd,Height).
type Span struct {
	Distance   float64
	CeilingY   float64
	FloorY     float64
	CeilingEnd int
	WallEnd    int
	Height     int
}

type Pixel struct {
	Row   int
	Color Color
}

// Project converts a wall distance into the column's band boundaries.
// The row at floor(CeilingY) is ceiling and the row at floor(FloorY) is wall.
func Project(distance float64, screenHeight int) Span {
	if !(distance > 0) {
		distance = Epsilon
	}
	h := float64(screenHeight)
	ceilingY := h/2 - h/distance
	floorY := h - ceilingY

	ceilingEnd := clampRow(math.Floor(ceilingY)+1, 0, screenHeight)
	wallEnd := clampRow(math.Floor(floorY)+1, ceilingEnd, screenHeight)
	return Span{
		Distance:   distance,
		CeilingY:   ceilingY,
		FloorY:     floorY,
		CeilingEnd: ceilingEnd,
		WallEnd:    wallEnd,
		Height:     screenHeight,
	}
}

func clampRow(v float64, lo, hi int) int {
	if v < float64(lo) {
		return lo
	}
	if v > float64(hi) {
		return hi
	}
	return int(v)
}

func (s Span) Band(y int) Band {
	switch {
	case y < s.CeilingEnd:
		return Ceiling
	case y < s.WallEnd:
		return WallBand
	default:
		return Floor
	}
}

// Palette colors the three bands. With Shade set the wall fades toward black at MaxDepth.
type Palette struct {
	Ceiling  Color
	Wall     Color
	Floor    Color
	Shade    bool
	MaxDepth float64
}

func DefaultPalette() Palette {
	return Palette{Ceiling: Black, Wall: White, Floor: DarkGrey}
}

func (p Palette) WallColor(distance float64) Color {
	if !p.Shade || !(p.MaxDepth > 0) {
		return p.Wall
	}
	return p.Wall.Scale(FMap(math.Min(distance, p.MaxDepth), 0, p.MaxDepth, 1, 0))
}

func (p Palette) Color(s Span, y int) Color {
	switch s.Band(y) {
	case Ceiling:
		return p.Ceiling
	case WallBand:
		return p.WallColor(s.Distance)
	default:
		return p.Floor
	}
}

// Pixels lists every row of the column top to bottom with its color.
func (s Span) Pixels(p Palette) []Pixel {
	pixels := make([]Pixel, 0, s.Height)
	wall := p.WallColor(s.Distance)
	for y := 0; y < s.Height; y++ {
		c := p.Floor
		switch s.Band(y) {
		case Ceiling:
			c = p.Ceiling
		case WallBand:
			c = wall
		}
		pixels = append(pixels, Pixel{Row: y, Color: c})
	}
	return pixels
}
