/*
 * Copyright (C) 2023 by Jason Figge
 */

package render

import (
	"fmt"
	"image"
	"image/color"

	"ray-casting/internal/projector"
)

// Sink receives the pixels of a frame. Draw with Workers > 1 writes disjoint
// columns from several goroutines, so a Sink must tolerate that.
type Sink interface {
	SetPixel(x, y uint, c projector.Color)
}

// FrameBuffer is a row-major RGBA8888 pixel buffer.
type FrameBuffer struct {
	width  int
	height int
	pixels []uint32
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{width: width, height: height, pixels: make([]uint32, width*height)}
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Pixels exposes the backing store, one packed color per pixel, for texture upload.
func (fb *FrameBuffer) Pixels() []uint32 { return fb.pixels }

// SetPixel panics on out of range writes; the renderer never issues them.
func (fb *FrameBuffer) SetPixel(x, y uint, c projector.Color) {
	if x >= uint(fb.width) || y >= uint(fb.height) {
		panic(fmt.Sprintf("pixel (%d,%d) outside %dx%d frame", x, y, fb.width, fb.height))
	}
	fb.pixels[int(y)*fb.width+int(x)] = uint32(c)
}

func (fb *FrameBuffer) At(x, y int) projector.Color {
	return projector.Color(fb.pixels[y*fb.width+x])
}

func (fb *FrameBuffer) Clear(c projector.Color) {
	for i := range fb.pixels {
		fb.pixels[i] = uint32(c)
	}
}

// Image copies the frame into an image.RGBA for encoding.
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()})
		}
	}
	return img
}
