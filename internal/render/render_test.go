/*
 * Copyright (C) 2023 by Jason Figge
 */

package render

import (
	"context"
	"errors"
	"testing"

	"ray-casting/internal/caster"
	"ray-casting/internal/player"
	"ray-casting/internal/projector"
	"ray-casting/internal/tilemap"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	width  = 320
	height = 200
)

// sentinel never appears in the default palette.
const sentinel = projector.Color(0xDEADBEEF)

func newRenderer(workers int) *Renderer {
	return &Renderer{
		Params:  caster.DefaultParams(width),
		Height:  height,
		Palette: projector.DefaultPalette(),
		Workers: workers,
	}
}

func TestDraw(t *testing.T) {
	Convey("When a frame is drawn", t, func() {
		m := tilemap.Bordered(16, 16)
		s := player.New(4, 4, 0.4)

		Convey("Every pixel of the frame is written", func() {
			fb := NewFrameBuffer(width, height)
			fb.Clear(sentinel)
			So(newRenderer(1).Draw(context.Background(), s, m, fb), ShouldBeNil)

			missed := 0
			for _, px := range fb.Pixels() {
				if projector.Color(px) == sentinel {
					missed++
				}
			}
			So(missed, ShouldEqual, 0)
		})

		Convey("Parallel workers produce the same frame as the sequential pass", func() {
			seq := NewFrameBuffer(width, height)
			So(newRenderer(1).Draw(context.Background(), s, m, seq), ShouldBeNil)

			for _, workers := range []int{2, 3, 8, 400} {
				par := NewFrameBuffer(width, height)
				So(newRenderer(workers).Draw(context.Background(), s, m, par), ShouldBeNil)
				So(par.Pixels(), ShouldResemble, seq.Pixels())
			}
		})

		Convey("The frame matches the pure column spans", func() {
			fb := NewFrameBuffer(width, height)
			r := newRenderer(1)
			So(r.Draw(context.Background(), s, m, fb), ShouldBeNil)

			spans := Columns(s, m, r.Params, height)
			So(len(spans), ShouldEqual, width)
			for _, col := range spans {
				So(fb.At(col.X, 0), ShouldEqual, r.Palette.Color(col.Span, 0))
				So(fb.At(col.X, height/2), ShouldEqual, projector.White)
				So(fb.At(col.X, height-1), ShouldEqual, r.Palette.Color(col.Span, height-1))
			}
		})

		Convey("Columns does not depend on earlier calls", func() {
			p := caster.DefaultParams(width)
			So(Columns(s, m, p, height), ShouldResemble, Columns(s, m, p, height))
		})

		Convey("A cancelled context stops the frame", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			for _, workers := range []int{1, 4} {
				err := newRenderer(workers).Draw(ctx, s, m, NewFrameBuffer(width, height))
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			}
		})
	})
}

func TestFrameBuffer(t *testing.T) {
	Convey("When the frame buffer is written", t, func() {
		fb := NewFrameBuffer(4, 3)

		Convey("In range writes land row-major", func() {
			fb.SetPixel(3, 2, projector.White)
			So(fb.Pixels()[2*4+3], ShouldEqual, uint32(projector.White))
			So(fb.At(3, 2), ShouldEqual, projector.White)
		})

		Convey("Out of range writes panic", func() {
			So(func() { fb.SetPixel(4, 0, projector.White) }, ShouldPanic)
			So(func() { fb.SetPixel(0, 3, projector.White) }, ShouldPanic)
		})

		Convey("The image copy keeps the channels", func() {
			fb.Clear(projector.RGBA(10, 20, 30, 255))
			img := fb.Image()
			So(img.Bounds().Dx(), ShouldEqual, 4)
			got := img.RGBAAt(1, 1)
			So(got.R, ShouldEqual, uint8(10))
			So(got.G, ShouldEqual, uint8(20))
			So(got.B, ShouldEqual, uint8(30))
		})
	})
}
