// Package config loads carousel and window settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/feather"
)

const appName = "feather"

// Config holds the window, carousel and item settings.
type Config struct {
	Window   WindowConfig   `koanf:"window"`
	Carousel CarouselConfig `koanf:"carousel"`
	Items    []ItemConfig   `koanf:"items"`
}

// WindowConfig holds window-related configuration.
type WindowConfig struct {
	Title      string `koanf:"title"`
	Width      int    `koanf:"width"`
	Height     int    `koanf:"height"`
	ShowFPS    bool   `koanf:"show_fps"`
	Debug      bool   `koanf:"debug"`
	Background string `koanf:"background"` // hex, e.g. "#1e1e2e"
}

// CarouselConfig holds the carousel layout and magnification tuning.
type CarouselConfig struct {
	Spacing        int     `koanf:"spacing"`
	PaddingTop     float64 `koanf:"padding_top"`
	PaddingBottom  float64 `koanf:"padding_bottom"`
	PopupX         float64 `koanf:"popup_x"`
	PopupY         float64 `koanf:"popup_y"`
	Sigma          float64 `koanf:"sigma"`           // default: 128
	Swing          float64 `koanf:"swing"`           // default: 72
	Offset         float64 `koanf:"offset"`          // default: 88
	EnterMs        float64 `koanf:"enter_ms"`        // default: 100
	LeaveMs        float64 `koanf:"leave_ms"`        // default: 200
	Acceleration   float64 `koanf:"acceleration"`    // default: 0.2
	Deceleration   float64 `koanf:"deceleration"`    // default: 0.7
	ItemColor      string  `koanf:"item_color"`      // hex
	SelectedColor  string  `koanf:"selected_color"`  // hex; empty derives from item_color
	HeightFraction float64 `koanf:"height_fraction"` // carousel height / window height, default: 0.5
}

// ItemConfig describes one carousel item.
type ItemConfig struct {
	Title  string  `koanf:"title"`
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
	Color  string  `koanf:"color"` // hex; empty uses carousel.item_color
}

// Load reads the given TOML files in order, later files overriding earlier
// ones, and applies defaults. Missing files are skipped. With no paths,
// DefaultPaths is used.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = DefaultPaths()
	}
	k := koanf.New(".")
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths returns the config search order: the XDG config file first,
// then ./feather.toml (highest priority).
func DefaultPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		appName + ".toml",
	}
}

func (c *Config) applyDefaults() {
	w := &c.Window
	if w.Title == "" {
		w.Title = "feather"
	}
	if w.Width <= 0 {
		w.Width = 640
	}
	if w.Height <= 0 {
		w.Height = 240
	}
	if w.Background == "" {
		w.Background = "#1e1e2e"
	}

	cc := &c.Carousel
	if cc.Spacing < 0 {
		cc.Spacing = 0
	}
	if cc.Sigma <= 0 {
		cc.Sigma = feather.DefaultSigma
	}
	if cc.Swing == 0 {
		cc.Swing = feather.DefaultSwing
	}
	if cc.Offset == 0 {
		cc.Offset = feather.DefaultOffset
	}
	if cc.EnterMs <= 0 {
		cc.EnterMs = feather.DefaultEnterDurationMs
	}
	if cc.LeaveMs <= 0 {
		cc.LeaveMs = feather.DefaultLeaveDurationMs
	}
	if cc.Acceleration <= 0 || cc.Acceleration > 1 {
		cc.Acceleration = feather.DefaultAccelerationRatio
	}
	if cc.Deceleration <= 0 || cc.Deceleration > 1 {
		cc.Deceleration = feather.DefaultDecelerationRatio
	}
	if cc.Acceleration+cc.Deceleration > 1 {
		cc.Acceleration, cc.Deceleration = feather.DefaultAccelerationRatio, feather.DefaultDecelerationRatio
	}
	if cc.ItemColor == "" {
		cc.ItemColor = "#8c99b3"
	}
	if cc.HeightFraction <= 0 || cc.HeightFraction > 1 {
		cc.HeightFraction = 0.5
	}

	for i := range c.Items {
		it := &c.Items[i]
		if it.Width <= 0 {
			it.Width = 48
		}
		if it.Height <= 0 {
			it.Height = 48
		}
		if it.Color == "" {
			it.Color = cc.ItemColor
		}
	}
}

func (c *Config) validate() error {
	if _, err := ParseColor(c.Window.Background); err != nil {
		return fmt.Errorf("window.background: %w", err)
	}
	if _, err := ParseColor(c.Carousel.ItemColor); err != nil {
		return fmt.Errorf("carousel.item_color: %w", err)
	}
	if c.Carousel.SelectedColor != "" {
		if _, err := ParseColor(c.Carousel.SelectedColor); err != nil {
			return fmt.Errorf("carousel.selected_color: %w", err)
		}
	}
	for i, it := range c.Items {
		if _, err := ParseColor(it.Color); err != nil {
			return fmt.Errorf("items[%d].color: %w", i, err)
		}
	}
	return nil
}

// ParseColor parses a "#rrggbb" or "#rgb" hex string into an opaque color.
func ParseColor(hex string) (feather.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return feather.Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return feather.Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// CarouselOptions returns carousel options sized for the window.
func (c *Config) CarouselOptions() feather.Options {
	cc := c.Carousel
	w := float64(c.Window.Width)
	opts := feather.DefaultOptions(w, float64(c.Window.Height)*cc.HeightFraction)
	opts.Spacing = cc.Spacing
	opts.Padding = feather.Thickness{Top: cc.PaddingTop, Bottom: cc.PaddingBottom}
	opts.PopupDeviation = feather.Vec2{X: cc.PopupX, Y: cc.PopupY}
	opts.Sigma = cc.Sigma
	opts.Swing = cc.Swing
	opts.Offset = cc.Offset
	opts.EnterDurationMs = cc.EnterMs
	opts.LeaveDurationMs = cc.LeaveMs
	opts.AccelerationRatio = cc.Acceleration
	opts.DecelerationRatio = cc.Deceleration
	return opts
}

// NewItems builds carousel items for every configured entry. Colors were
// validated by Load.
func (c *Config) NewItems() []*feather.Item {
	selected, _ := ParseColor(c.Carousel.SelectedColor)
	items := make([]*feather.Item, 0, len(c.Items))
	for _, ic := range c.Items {
		col, _ := ParseColor(ic.Color)
		p := feather.NewRect(ic.Title, ic.Width, ic.Height, col)
		it := feather.NewItemWithPresenter(ic.Title, p)
		if c.Carousel.SelectedColor != "" {
			it.SelectedColor = selected
		}
		items = append(items, it)
	}
	return items
}
