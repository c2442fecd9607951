/*
 * Copyright (C) 2023 by Jason Figge
 */

package render

import (
	"context"

	"ray-casting/internal/caster"
	"ray-casting/internal/player"
	"ray-casting/internal/projector"
	"ray-casting/internal/tilemap"

	"golang.org/x/sync/errgroup"
)

// ColumnSpan is the projected result for one screen column.
type ColumnSpan struct {
	X        int
	Distance float64
	Span     projector.Span
}

// Columns casts and projects every column of the screen. It has no side effects.
func Columns(s player.State, m *tilemap.Map, params caster.Params, height int) []ColumnSpan {
	spans := make([]ColumnSpan, params.ScreenWidth)
	for x := range spans {
		spans[x] = column(s, m, params, height, x)
	}
	return spans
}

func column(s player.State, m *tilemap.Map, params caster.Params, height, x int) ColumnSpan {
	d := params.Cast(s, m, x)
	return ColumnSpan{X: x, Distance: d, Span: projector.Project(d, height)}
}

// Renderer draws whole frames. Workers <= 1 draws the columns in order on the
// calling goroutine.
type Renderer struct {
	Params  caster.Params
	Height  int
	Palette projector.Palette
	Workers int
}

// Draw renders one frame of s looking into m. It only fails when ctx is done.
func (r *Renderer) Draw(ctx context.Context, s player.State, m *tilemap.Map, sink Sink) error {
	if r.Workers <= 1 {
		return r.drawStrip(ctx, s, m, sink, 0, r.Params.ScreenWidth)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.Workers)

	width := r.Params.ScreenWidth
	strip := (width + r.Workers - 1) / r.Workers
	for x0 := 0; x0 < width; x0 += strip {
		x0, x1 := x0, x0+strip
		if x1 > width {
			x1 = width
		}
		group.Go(func() error {
			return r.drawStrip(groupCtx, s, m, sink, x0, x1)
		})
	}
	return group.Wait()
}

func (r *Renderer) drawStrip(ctx context.Context, s player.State, m *tilemap.Map, sink Sink, x0, x1 int) error {
	for x := x0; x < x1; x++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.DrawColumn(sink, column(s, m, r.Params, r.Height, x))
	}
	return nil
}

// DrawColumn writes one projected column top to bottom.
func (r *Renderer) DrawColumn(sink Sink, col ColumnSpan) {
	x := uint(col.X)
	for _, px := range col.Span.Pixels(r.Palette) {
		sink.SetPixel(x, uint(px.Row), px.Color)
	}
}
