package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/pixbuf"
	"github.com/gogpu/panelbg/surface"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "panel.toml", `
type = "image"
image = "stripes.png"
fit = true
rotate = true
orientation = "left"
watch_image = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, panelbg.TypeImage, cfg.TypeValue())
	assert.Equal(t, panelbg.OrientationLeft, cfg.OrientationValue())
	assert.Equal(t, filepath.Join(dir, "stripes.png"), cfg.Image)
	assert.True(t, cfg.WatchImage)
	assert.Equal(t, 255, cfg.Opacity, "default kept")
	assert.Equal(t, panelbg.ImageBackground{Path: cfg.Image, Fit: true, Rotate: true}, cfg.Background())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "panel.yml", `
type: color
color: "#336699"
opacity: 128
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, panelbg.ColorBackground{Color: panelbg.RGB{R: 0x33, G: 0x66, B: 0x99}, Alpha: 128}, cfg.Background())
	assert.Equal(t, panelbg.OrientationTop, cfg.OrientationValue())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"extension", "panel.ini", "type=none", ErrUnknownFormat},
		{"type", "a.toml", `type = "plaid"`, ErrUnknownType},
		{"color", "b.toml", `color = "#12345g"`, ErrInvalidColor},
		{"opacity", "c.yaml", "opacity: 300", ErrInvalidOpacity},
		{"orientation", "d.yaml", "orientation: up", ErrInvalidOrientation},
		{"default color", "e.toml", `default_color = "nope"`, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want panelbg.RGB
	}{
		{"#ff8000", panelbg.RGB{R: 0xff, G: 0x80}},
		{"102030", panelbg.RGB{R: 0x10, G: 0x20, B: 0x30}},
		{"#fff", panelbg.RGB{R: 0xff, G: 0xff, B: 0xff}},
		{"navy", panelbg.RGB{B: 0x80}},
		{" SteelBlue ", panelbg.RGB{R: 0x46, G: 0x82, B: 0xb4}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Type = "color"
	cfg.Color = "#abcdef"
	cfg.Opacity = 40
	cfg.Orientation = "right"

	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := cfg.Marshal(format)
			require.NoError(t, err)
			back, err := Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, cfg, back)
		})
	}
}

func TestApply(t *testing.T) {
	desk := panelbg.NewStaticDesktop(100, 50, nil)
	st := panelbg.NewState(panelbg.NewRegistry(desk))
	target := surface.NewImageTarget(0, 100, 20)
	st.Realize(target)
	st.ChangeRegion(panelbg.OrientationTop, 0, 0, 100, 20)

	cfg, err := Parse([]byte(`
type = "color"
color = "#102030"
image = "/unused.png"
fit = true
default_color = "#010101"
`), FormatTOML)
	require.NoError(t, err)
	require.NoError(t, cfg.Apply(st))

	assert.Equal(t, panelbg.ColorBackground{Color: panelbg.RGB{R: 0x10, G: 0x20, B: 0x30}, Alpha: 255}, st.Background())
	assert.Equal(t, panelbg.ImageBackground{Path: "/unused.png", Fit: true}, st.Image(), "inactive arm configured")
	assert.Equal(t, surface.BindColor, target.Kind())
	assert.True(t, st.DefaultStyle().HasColor)

	// Applying the same settings again does no work.
	before := st.Stats()
	require.NoError(t, cfg.Apply(st))
	assert.Equal(t, before, st.Stats())
}

func TestApplyDefaultPattern(t *testing.T) {
	dir := t.TempDir()
	pattern, err := pixbuf.New(2, 2, pixbuf.FormatRGB8)
	require.NoError(t, err)
	pattern.Fill(5, 6, 7, 255)
	require.NoError(t, pattern.SavePNG(filepath.Join(dir, "tile.png")))

	path := writeFile(t, dir, "panel.yaml", "default_pattern: tile.png\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	st := panelbg.NewState(nil)
	target := surface.NewImageTarget(0, 4, 4)
	st.Realize(target)
	st.ChangeRegion(panelbg.OrientationTop, 0, 0, 4, 4)
	require.NoError(t, cfg.Apply(st))

	assert.Equal(t, surface.BindPixmap, target.Kind())
	r, g, b, _ := target.Render().GetRGBA(3, 3)
	assert.Equal(t, [3]uint8{5, 6, 7}, [3]uint8{r, g, b})

	cfg.DefaultPattern = filepath.Join(dir, "gone.png")
	assert.Error(t, cfg.Apply(st))
}
