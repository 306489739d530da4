package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("glmpv")
	v.SetConfigType("toml")
	v.AddConfigPath(os.TempDir() + "/glmpv-config-test-does-not-exist")
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "glmpv", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, 4, cfg.GL.Major)
	assert.Equal(t, 1, cfg.GL.Minor)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "warn", cfg.Log.MPV)
	assert.Equal(t, float32(30), cfg.Cube.Speed)
	assert.Equal(t, 640, cfg.Snapshot.Width)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "glmpv.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
[window]
width = 800
height = 600

[gl]
major = 3
minor = 3

[mpv]
hwdec = "no"

[mpv.options]
loop-file = "inf"
osc = "no"

[cube]
speed = 90
`), 0o644))

	cfg, err := Load(NewViper(file))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 3, cfg.GL.Major)
	assert.Equal(t, float32(90), cfg.Cube.Speed)

	opts := cfg.MPVOptions()
	assert.Equal(t, "no", opts["hwdec"])
	assert.Equal(t, "inf", opts["loop-file"])
	assert.Equal(t, "no", opts["osc"])
}

func TestLoadMalformedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "glmpv.toml")
	require.NoError(t, os.WriteFile(file, []byte("[window\nwidth ="), 0o644))

	_, err := Load(NewViper(file))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(newTestViper())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"gl 2.1", func(c *Config) { c.GL.Major, c.GL.Minor = 2, 1 }},
		{"gl 3.1", func(c *Config) { c.GL.Major, c.GL.Minor = 3, 1 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"mpv level", func(c *Config) { c.Log.MPV = "verbose" }},
		{"snapshot width", func(c *Config) { c.Snapshot.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := base()
	cfg.GL.Major, cfg.GL.Minor = 3, 2
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GLMPV_WINDOW_WIDTH", "1024")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
}
