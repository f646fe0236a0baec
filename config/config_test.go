package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/feather"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "feather", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 240, cfg.Window.Height)
	assert.InDelta(t, feather.DefaultSigma, cfg.Carousel.Sigma, 0)
	assert.InDelta(t, feather.DefaultSwing, cfg.Carousel.Swing, 0)
	assert.InDelta(t, feather.DefaultOffset, cfg.Carousel.Offset, 0)
	assert.InDelta(t, feather.DefaultEnterDurationMs, cfg.Carousel.EnterMs, 0)
	assert.InDelta(t, feather.DefaultLeaveDurationMs, cfg.Carousel.LeaveMs, 0)
	assert.InDelta(t, 0.2, cfg.Carousel.Acceleration, 1e-12)
	assert.InDelta(t, 0.7, cfg.Carousel.Deceleration, 1e-12)
	assert.Empty(t, cfg.Items)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[window]
title = "dock"
width = 800

[carousel]
spacing = 10
sigma = 64
enter_ms = 50
item_color = "#ff0000"
popup_y = -8

[[items]]
title = "one"
width = 40

[[items]]
title = "two"
color = "#00ff00"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dock", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 10, cfg.Carousel.Spacing)
	assert.InDelta(t, 64.0, cfg.Carousel.Sigma, 0)
	assert.InDelta(t, 50.0, cfg.Carousel.EnterMs, 0)

	require.Len(t, cfg.Items, 2)
	assert.Equal(t, "one", cfg.Items[0].Title)
	assert.InDelta(t, 40.0, cfg.Items[0].Width, 0)
	assert.InDelta(t, 48.0, cfg.Items[0].Height, 0)
	assert.Equal(t, "#ff0000", cfg.Items[0].Color, "inherits carousel.item_color")
	assert.Equal(t, "#00ff00", cfg.Items[1].Color)

	opts := cfg.CarouselOptions()
	assert.InDelta(t, 800.0, opts.Width, 0)
	assert.InDelta(t, 120.0, opts.Height, 0)
	assert.Equal(t, 10, opts.Spacing)
	assert.InDelta(t, -8.0, opts.PopupDeviation.Y, 0)
	assert.InDelta(t, 64.0, opts.Sigma, 0)
	assert.InDelta(t, float64(feather.DefaultIntegrationBound), opts.IntegrationBound, 0)
}

func TestLoad_LaterFileWins(t *testing.T) {
	base := writeConfig(t, "base.toml", "[carousel]\nspacing = 4\nswing = 10\n")
	local := writeConfig(t, "local.toml", "[carousel]\nspacing = 12\n")

	cfg, err := Load(base, local)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Carousel.Spacing)
	assert.InDelta(t, 10.0, cfg.Carousel.Swing, 0)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed toml", body: "[carousel\nspacing = 1"},
		{name: "bad item color", body: "[carousel]\nitem_color = \"nope\""},
		{name: "bad selected color", body: "[carousel]\nselected_color = \"#12\""},
		{name: "bad background", body: "[window]\nbackground = \"red\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "bad.toml", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ClampsRatios(t *testing.T) {
	cfg, err := Load(writeConfig(t, "r.toml", "[carousel]\nacceleration = 0.6\ndeceleration = 0.6\nspacing = -3\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.2, cfg.Carousel.Acceleration, 1e-12)
	assert.InDelta(t, 0.7, cfg.Carousel.Deceleration, 1e-12)
	assert.Equal(t, 0, cfg.Carousel.Spacing)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 128.0/255, c.G, 1e-9)
	assert.InDelta(t, 0.0, c.B, 1e-9)
	assert.InDelta(t, 1.0, c.A, 0)

	_, err = ParseColor("ff8000")
	assert.Error(t, err)
}

func TestNewItems(t *testing.T) {
	cfg, err := Load(writeConfig(t, "items.toml", `
[carousel]
selected_color = "#ffffff"

[[items]]
title = "a"
width = 30
height = 20
color = "#000000"
`))
	require.NoError(t, err)

	items := cfg.NewItems()
	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, "a", it.Title.Get())
	assert.InDelta(t, 30.0, it.Presenter().Width, 0)
	assert.InDelta(t, 20.0, it.Presenter().Height, 0)
	assert.Equal(t, feather.Color{A: 1}, it.NormalColor)
	assert.Equal(t, feather.Color{R: 1, G: 1, B: 1, A: 1}, it.SelectedColor)
}

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths()
	require.Len(t, paths, 2)
	assert.Equal(t, "config.toml", filepath.Base(paths[0]))
	assert.Equal(t, "feather.toml", paths[1])
}
