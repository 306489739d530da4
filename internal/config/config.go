// Package config loads glmpv settings from a TOML file, GLMPV_*
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Window struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	VSync  bool   `mapstructure:"vsync"`
}

type GL struct {
	Major int `mapstructure:"major"`
	Minor int `mapstructure:"minor"`
}

type MPV struct {
	Hwdec   string            `mapstructure:"hwdec"`
	OSC     bool              `mapstructure:"osc"`
	Options map[string]string `mapstructure:"options"`
}

type Log struct {
	Level string `mapstructure:"level"`
	MPV   string `mapstructure:"mpv"`
}

type Cube struct {
	// Speed is the rotation speed in degrees per second.
	Speed float32 `mapstructure:"speed"`
}

type Snapshot struct {
	Dir   string `mapstructure:"dir"`
	Width int    `mapstructure:"width"`
}

type Config struct {
	Window   Window   `mapstructure:"window"`
	GL       GL       `mapstructure:"gl"`
	MPV      MPV      `mapstructure:"mpv"`
	Log      Log      `mapstructure:"log"`
	Cube     Cube     `mapstructure:"cube"`
	Snapshot Snapshot `mapstructure:"snapshot"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "glmpv")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.vsync", true)
	v.SetDefault("gl.major", 4)
	v.SetDefault("gl.minor", 1)
	v.SetDefault("mpv.hwdec", "auto-safe")
	v.SetDefault("mpv.osc", true)
	v.SetDefault("mpv.options", map[string]string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.mpv", "warn")
	v.SetDefault("cube.speed", 30)
	v.SetDefault("snapshot.dir", ".")
	v.SetDefault("snapshot.width", 640)
}

// NewViper returns a viper instance with defaults, the GLMPV_ env prefix
// and the search path for glmpv.toml. An explicit file overrides the
// search path.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("GLMPV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		return v
	}
	v.SetConfigName("glmpv")
	v.SetConfigType("toml")
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	return v
}

// Dir returns $XDG_CONFIG_HOME/glmpv, falling back to ~/.config/glmpv.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "glmpv"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, ".config", "glmpv"), nil
}

// Load reads the config file if there is one and decodes v. A missing
// file is not an error; a malformed one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var logLevels = map[string]bool{
	"panic": true, "fatal": true, "error": true, "warn": true, "warning": true,
	"info": true, "debug": true, "trace": true,
}

var mpvLevels = map[string]bool{
	"no": true, "fatal": true, "error": true, "warn": true,
	"info": true, "v": true, "debug": true, "trace": true,
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.GL.Major < 3 || (c.GL.Major == 3 && c.GL.Minor < 2) {
		return errors.Errorf("OpenGL %d.%d has no core profile, need 3.2 or newer", c.GL.Major, c.GL.Minor)
	}
	if !logLevels[c.Log.Level] {
		return errors.Errorf("unknown log level %q", c.Log.Level)
	}
	if !mpvLevels[c.Log.MPV] {
		return errors.Errorf("unknown mpv log level %q", c.Log.MPV)
	}
	if c.Snapshot.Width <= 0 {
		return errors.Errorf("invalid snapshot width %d", c.Snapshot.Width)
	}
	return nil
}

// MPVOptions returns the string options applied before initialization.
// Entries from mpv.options win over the dedicated keys.
func (c *Config) MPVOptions() map[string]string {
	opts := map[string]string{
		"hwdec": c.MPV.Hwdec,
	}
	for k, v := range c.MPV.Options {
		opts[k] = v
	}
	return opts
}
