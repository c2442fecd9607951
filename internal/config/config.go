/*
 * Copyright (C) 2023 by Jason Figge
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"ray-casting/internal/caster"
	"ray-casting/internal/player"
	"ray-casting/internal/projector"
	"ray-casting/internal/tilemap"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "RAYCASTER"

type Config struct {
	Screen ScreenConfig `mapstructure:"screen"`
	Camera CameraConfig `mapstructure:"camera"`
	Player PlayerConfig `mapstructure:"player"`
	Colors ColorConfig  `mapstructure:"colors"`
	Map    MapConfig    `mapstructure:"map"`
}

type ScreenConfig struct {
	Title      string        `mapstructure:"title"`
	Width      int           `mapstructure:"width"`
	Height     int           `mapstructure:"height"`
	Scale      int           `mapstructure:"scale"`
	Workers    int           `mapstructure:"workers"`
	FrameDelay time.Duration `mapstructure:"frameDelay"`
}

type CameraConfig struct {
	FieldOfView float64 `mapstructure:"fov"`
	MaxDepth    float64 `mapstructure:"maxDepth"`
	StepSize    float64 `mapstructure:"stepSize"`
}

type PlayerConfig struct {
	X         float64 `mapstructure:"x"`
	Y         float64 `mapstructure:"y"`
	Heading   float64 `mapstructure:"heading"`
	TurnRate  float64 `mapstructure:"turnRate"`
	MoveSpeed float64 `mapstructure:"moveSpeed"`
	Collide   bool    `mapstructure:"collide"`
}

// ColorConfig holds hex colors, "RRGGBB" or "RRGGBBAA", with an optional '#'.
type ColorConfig struct {
	Ceiling string `mapstructure:"ceiling"`
	Wall    string `mapstructure:"wall"`
	Floor   string `mapstructure:"floor"`
	Shade   bool   `mapstructure:"shade"`
}

// MapConfig picks the map source: File wins over Rows, Rows over Layout.
type MapConfig struct {
	File   string   `mapstructure:"file"`
	Rows   []string `mapstructure:"rows"`
	Width  int      `mapstructure:"width"`
	Height int      `mapstructure:"height"`
	Layout string   `mapstructure:"layout"`
}

var defaults = map[string]interface{}{
	"screen.title":      "Ray Caster",
	"screen.width":      320,
	"screen.height":     200,
	"screen.scale":      3,
	"screen.workers":    1,
	"screen.frameDelay": "16600us",
	"camera.fov":        caster.DefaultFieldOfView,
	"camera.maxDepth":   caster.DefaultMaxDepth,
	"camera.stepSize":   caster.DefaultStepSize,
	"player.x":          4.0,
	"player.y":          4.0,
	"player.heading":    0.0,
	"player.turnRate":   player.DefaultTurnRate,
	"player.moveSpeed":  player.DefaultMoveSpeed,
	"player.collide":    false,
	"colors.ceiling":    "000000ff",
	"colors.wall":       "ffffffff",
	"colors.floor":      "404040ff",
	"colors.shade":      false,
	"map.file":          "",
	"map.rows":          []string{},
	"map.width":         tilemap.DefaultWidth,
	"map.height":        tilemap.DefaultHeight,
	"map.layout":        tilemap.DefaultLayout,
}

// Flags registers the command line overrides. Names match the config keys.
func Flags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "path to a YAML config file")
	flags.Int("screen.width", 320, "render width in pixels")
	flags.Int("screen.height", 200, "render height in pixels")
	flags.Int("screen.scale", 3, "window pixels per render pixel")
	flags.Int("screen.workers", 1, "column workers per frame, 1 renders sequentially")
	flags.Float64("camera.fov", caster.DefaultFieldOfView, "field of view in radians")
	flags.Float64("camera.maxDepth", caster.DefaultMaxDepth, "maximum ray distance in cells")
	flags.Float64("camera.stepSize", caster.DefaultStepSize, "ray march step in cells")
	flags.Bool("player.collide", false, "stop the player at walls")
	flags.Bool("colors.shade", false, "darken walls with distance")
	flags.String("map.file", "", "YAML file holding map rows")
	return flags
}

// Load layers defaults, the optional YAML file at path, RAYCASTER_* environment
// (after reading a .env file if one exists) and any changed flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	vp := viper.New()
	for key, val := range defaults {
		vp.SetDefault(key, val)
	}
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := vp.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Screen.Height <= 0 {
		return fmt.Errorf("screen height %d must be positive", c.Screen.Height)
	}
	if c.Screen.Scale <= 0 {
		return fmt.Errorf("screen scale %d must be positive", c.Screen.Scale)
	}
	if c.Screen.Workers < 0 {
		return fmt.Errorf("screen workers %d must not be negative", c.Screen.Workers)
	}
	if err := c.CasterParams().Validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	if _, err := c.TileMap(); err != nil {
		return fmt.Errorf("map: %w", err)
	}
	return nil
}

func (c *Config) CasterParams() caster.Params {
	return caster.Params{
		FieldOfView: c.Camera.FieldOfView,
		MaxDepth:    c.Camera.MaxDepth,
		StepSize:    c.Camera.StepSize,
		ScreenWidth: c.Screen.Width,
	}
}

func (c *Config) Start() player.State {
	return player.New(c.Player.X, c.Player.Y, c.Player.Heading)
}

func (c *Config) Tuning() player.Tuning {
	return player.Tuning{
		TurnRate:  c.Player.TurnRate,
		MoveSpeed: c.Player.MoveSpeed,
		Collide:   c.Player.Collide,
	}
}

func (c *Config) Palette() (projector.Palette, error) {
	var (
		p   projector.Palette
		err error
	)
	if p.Ceiling, err = ParseColor(c.Colors.Ceiling); err != nil {
		return p, err
	}
	if p.Wall, err = ParseColor(c.Colors.Wall); err != nil {
		return p, err
	}
	if p.Floor, err = ParseColor(c.Colors.Floor); err != nil {
		return p, err
	}
	p.Shade = c.Colors.Shade
	p.MaxDepth = c.Camera.MaxDepth
	return p, nil
}

// TileMap parses the configured map source once.
func (c *Config) TileMap() (*tilemap.Map, error) {
	switch {
	case c.Map.File != "":
		return LoadMap(c.Map.File)
	case len(c.Map.Rows) > 0:
		return tilemap.FromRows(c.Map.Rows)
	default:
		return tilemap.Parse(c.Map.Width, c.Map.Height, c.Map.Layout)
	}
}

// ParseColor reads "RRGGBB" or "RRGGBBAA" hex, with an optional leading '#'.
// Six digit colors are opaque.
func ParseColor(s string) (projector.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("color %q: want RRGGBB or RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return projector.Color(v), nil
}

type mapFile struct {
	Rows []string `yaml:"rows"`
}

// LoadMap reads a YAML document with a "rows" list, one string per map row.
func LoadMap(path string) (*tilemap.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	mf := mapFile{}
	if err = yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	m, err := tilemap.FromRows(mf.Rows)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	return m, nil
}
