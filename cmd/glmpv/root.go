package main

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dejadejade/glmpv/internal/config"
	"github.com/dejadejade/glmpv/internal/logging"
)

var (
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     *logrus.Logger

	rootCmd = &cobra.Command{
		Use:   "glmpv",
		Short: "Render libmpv video into a GLFW OpenGL window",
		Long: `glmpv embeds libmpv's render API in an OpenGL window.

  simple  libmpv renders straight into the window's framebuffer
  fbo     libmpv renders into a framebuffer texture drawn as a quad
  cube    the texture is mapped onto a rotating cube; properties are
          queried asynchronously through a second client handle

Settings are read from glmpv.toml in $XDG_CONFIG_HOME/glmpv or the
current directory, and from GLMPV_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "version", "completion":
				return nil
			}
			return setup()
		},
	}
)

func init() {
	v = config.NewViper("")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default glmpv.toml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("mpv-log-level", "warn", "libmpv log level forwarded to the log")
	flags.Int("width", 1280, "window width")
	flags.Int("height", 720, "window height")
	flags.Bool("vsync", true, "synchronise swaps with the display")

	for key, flag := range map[string]string{
		"log.level":     "log-level",
		"log.mpv":       "mpv-log-level",
		"window.width":  "width",
		"window.height": "height",
		"window.vsync":  "vsync",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(simpleCmd, fboCmd, cubeCmd, versionCmd)
}

func setup() error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return err
	}
	log, err = logging.New(cfg.Log.Level)
	if err != nil {
		return errors.Wrap(err, "failed to set up logging")
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debugf("config: %s", used)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "glmpv %s (%s) %s\n", version, commit, runtime.Version())
	},
}
