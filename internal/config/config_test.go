/*
 * Copyright (C) 2023 by Jason Figge
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ray-casting/internal/caster"
	"ray-casting/internal/projector"
	"ray-casting/internal/tilemap"

	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("When the config is loaded", t, func() {
		Convey("The defaults describe the reference instance", func() {
			cfg, err := Load("", nil)
			So(err, ShouldBeNil)
			So(cfg.Screen.Width, ShouldEqual, 320)
			So(cfg.Screen.FrameDelay, ShouldEqual, 16600*time.Microsecond)
			So(cfg.CasterParams(), ShouldResemble, caster.DefaultParams(320))
			So(cfg.Start().X, ShouldEqual, 4.0)
			So(cfg.Tuning().Collide, ShouldBeFalse)

			m, err := cfg.TileMap()
			So(err, ShouldBeNil)
			So(m.String(), ShouldEqual, tilemap.Bordered(16, 16).String())

			p, err := cfg.Palette()
			So(err, ShouldBeNil)
			So(p, ShouldResemble, projector.Palette{
				Ceiling:  projector.Black,
				Wall:     projector.White,
				Floor:    projector.DarkGrey,
				MaxDepth: caster.DefaultMaxDepth,
			})
		})

		Convey("A YAML file overrides the defaults", func() {
			path := writeFile(t, "config.yaml", `
screen:
  width: 64
  workers: 4
camera:
  maxDepth: 8
colors:
  wall: "#ff0000"
  shade: true
map:
  rows:
    - "1111"
    - "1001"
    - "1111"
`)
			cfg, err := Load(path, nil)
			So(err, ShouldBeNil)
			So(cfg.Screen.Width, ShouldEqual, 64)
			So(cfg.Screen.Workers, ShouldEqual, 4)
			So(cfg.Camera.MaxDepth, ShouldEqual, 8.0)
			So(cfg.Screen.Height, ShouldEqual, 200)

			p, err := cfg.Palette()
			So(err, ShouldBeNil)
			So(p.Wall, ShouldEqual, projector.Color(0xFF0000FF))
			So(p.Shade, ShouldBeTrue)

			m, err := cfg.TileMap()
			So(err, ShouldBeNil)
			So(m.Width(), ShouldEqual, 4)
			So(m.Height(), ShouldEqual, 3)
		})

		Convey("Environment variables override the defaults", func() {
			os.Setenv("RAYCASTER_SCREEN_HEIGHT", "120")
			os.Setenv("RAYCASTER_PLAYER_COLLIDE", "true")
			defer os.Unsetenv("RAYCASTER_SCREEN_HEIGHT")
			defer os.Unsetenv("RAYCASTER_PLAYER_COLLIDE")
			cfg, err := Load("", nil)
			So(err, ShouldBeNil)
			So(cfg.Screen.Height, ShouldEqual, 120)
			So(cfg.Player.Collide, ShouldBeTrue)
		})

		Convey("Changed flags override everything else", func() {
			flags := Flags("test")
			So(flags.Parse([]string{"--screen.width=640", "--colors.shade"}), ShouldBeNil)
			cfg, err := Load("", flags)
			So(err, ShouldBeNil)
			So(cfg.Screen.Width, ShouldEqual, 640)
			So(cfg.Colors.Shade, ShouldBeTrue)
			So(cfg.Screen.Height, ShouldEqual, 200)
		})

		Convey("A bad step size fails validation", func() {
			path := writeFile(t, "config.yaml", "camera:\n  stepSize: 0\n")
			_, err := Load(path, nil)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, caster.ErrInvalidParams), ShouldBeTrue)
		})

		Convey("A short map layout is a map format error", func() {
			path := writeFile(t, "config.yaml", "map:\n  layout: \"1111\"\n")
			_, err := Load(path, nil)
			var mfe *tilemap.MapFormatError
			So(errors.As(err, &mfe), ShouldBeTrue)
			So(mfe.Got, ShouldEqual, 4)
		})

		Convey("A missing config file is reported", func() {
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadMap(t *testing.T) {
	Convey("When a map file is loaded", t, func() {
		Convey("Rows become the grid", func() {
			path := writeFile(t, "arena.yaml", "rows:\n  - \"###\"\n  - \"#.#\"\n  - \"###\"\n")
			m, err := LoadMap(path)
			So(err, ShouldBeNil)
			So(m.IsWall(1, 1), ShouldBeFalse)
			So(m.IsWall(0, 1), ShouldBeTrue)
		})

		Convey("Ragged rows are a map format error", func() {
			path := writeFile(t, "arena.yaml", "rows:\n  - \"###\"\n  - \"#.\"\n")
			_, err := LoadMap(path)
			var mfe *tilemap.MapFormatError
			So(errors.As(err, &mfe), ShouldBeTrue)
		})
	})
}

func TestParseColor(t *testing.T) {
	Convey("When colors are parsed", t, func() {
		c, err := ParseColor("#404040")
		So(err, ShouldBeNil)
		So(c, ShouldEqual, projector.DarkGrey)

		c, err = ParseColor("12345678")
		So(err, ShouldBeNil)
		So(c, ShouldEqual, projector.Color(0x12345678))

		_, err = ParseColor("fff")
		So(err, ShouldNotBeNil)
		_, err = ParseColor("zzzzzz")
		So(err, ShouldNotBeNil)
	})
}
