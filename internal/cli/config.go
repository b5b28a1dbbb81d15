package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

const (
	defaultWidth  = 800 // default viewport width
	defaultHeight = 600 // default viewport height
)

// config is the TOML config file. Unset keys keep their defaults.
//
//	width = 1024
//	height = 768
//
//	[cloud]
//	orientation = "right angled"
//	scale = "log"
//	min_font_size = 14
//	max_font_size = 96
//
//	[layout]
//	padding = 4
//	budget = "2s"
//	seed = 7
//
//	[palette]
//	hues = 8
//
//	[transitions]
//	move = "400ms"
type config struct {
	Width       float64           `toml:"width"`
	Height      float64           `toml:"height"`
	Cloud       cloud.Options     `toml:"cloud"`
	Layout      layoutConfig      `toml:"layout"`
	Palette     paletteConfig     `toml:"palette"`
	Transitions transitionsConfig `toml:"transitions"`
}

type layoutConfig struct {
	Padding float64       `toml:"padding"`
	Budget  time.Duration `toml:"budget"`
	Seed    uint64        `toml:"seed"`
}

type paletteConfig struct {
	Hues      int     `toml:"hues"`
	Chroma    float64 `toml:"chroma"`
	Lightness float64 `toml:"lightness"`
	Color     string  `toml:"color"` // single color; overrides hues
}

type transitionsConfig struct {
	Move time.Duration `toml:"move"`
	Exit time.Duration `toml:"exit"`
}

func defaultConfig() config {
	return config{
		Width:  defaultWidth,
		Height: defaultHeight,
		Cloud:  cloud.DefaultOptions(),
		Layout: layoutConfig{
			Padding: layout.DefaultPadding,
			Budget:  layout.DefaultBudget,
			Seed:    layout.DefaultSeed,
		},
		Palette: paletteConfig{Hues: 10, Chroma: 0.55, Lightness: 0.55},
		Transitions: transitionsConfig{
			Move: scene.DefaultMoveDuration,
			Exit: scene.DefaultExitDuration,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, werrors.Wrap(werrors.ErrCodeInvalidOptions, err, "parse config %s", path)
	}
	cfg.Cloud = cfg.Cloud.Normalize()
	return cfg, nil
}

// palette returns the color function described by the config.
func (c config) palette() cloud.ColorFunc {
	if c.Palette.Color != "" {
		return cloud.Monochrome(c.Palette.Color)
	}
	return cloud.NewPalette(c.Palette.Hues, c.Palette.Chroma, c.Palette.Lightness)
}

// placement returns the padding, budget and seed for placement passes.
func (c config) placement() layout.Config {
	return layout.Config{
		Padding: c.Layout.Padding,
		Budget:  c.Layout.Budget,
		Seed:    c.Layout.Seed,
	}
}

// cloudOptions returns the construction options shared by all commands.
func (c config) cloudOptions() []cloud.Option {
	return []cloud.Option{
		cloud.WithOptions(c.Cloud),
		cloud.WithPlacement(c.placement()),
		cloud.WithTransitions(c.Transitions.Move, c.Transitions.Exit),
	}
}
