/*
 * Copyright (C) 2023 by Jason Figge
 */

package snapshot

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"ray-casting/internal/player"
	"ray-casting/internal/render"
	"ray-casting/internal/tilemap"

	"github.com/remeh/sizedwaitgroup"
)

// Frame is one rendered step of a walk and the pose it was rendered from.
type Frame struct {
	Index  int
	Player player.State
	Buffer *render.FrameBuffer
}

// Walk applies each input in script, in order, and renders the view after every step.
func Walk(
	ctx context.Context,
	r *render.Renderer,
	m *tilemap.Map,
	start player.State,
	tuning player.Tuning,
	script []player.Input,
) ([]Frame, error) {
	frames := make([]Frame, 0, len(script))
	s := start
	for i, in := range script {
		s = player.Update(s, in, tuning, m)
		fb := render.NewFrameBuffer(r.Params.ScreenWidth, r.Height)
		if err := r.Draw(ctx, s, m, fb); err != nil {
			return frames, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, Frame{Index: i, Player: s, Buffer: fb})
	}
	return frames, nil
}

// Forward is a script that holds the forward key for n frames.
func Forward(n int) []player.Input {
	script := make([]player.Input, n)
	for i := range script {
		script[i].Forward = true
	}
	return script
}

// WritePNGs encodes frames into dir as frame-NNNN.png, at most workers at a time.
// It returns the written paths in frame order.
func WritePNGs(dir string, frames []Frame, workers int) ([]string, error) {
	if workers < 1 {
		workers = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, len(frames))
	var (
		mu       sync.Mutex
		firstErr error
	)
	swg := sizedwaitgroup.New(workers)
	for i, frame := range frames {
		swg.Add()
		go func(i int, frame Frame) {
			defer swg.Done()
			path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", frame.Index))
			if err := writePNG(path, frame.Buffer); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			paths[i] = path
		}(i, frame)
	}
	swg.Wait()
	return paths, firstErr
}

func writePNG(path string, fb *render.FrameBuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = png.Encode(f, fb.Image()); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
