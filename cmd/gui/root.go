package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// config is everything a render run reads from flags, the environment
// (GUI_ prefix) and an optional config file.
type config struct {
	Markup     string        `mapstructure:"markup"`
	State      string        `mapstructure:"state"`
	SaveState  string        `mapstructure:"save_state"`
	Assets     string        `mapstructure:"assets"`
	Events     string        `mapstructure:"events"`
	Out        string        `mapstructure:"out"`
	Width      int           `mapstructure:"width"`
	Height     int           `mapstructure:"height"`
	Frames     int           `mapstructure:"frames"`
	Interval   time.Duration `mapstructure:"interval"`
	Background string        `mapstructure:"background"`
	FontSize   float64       `mapstructure:"font_size"`
	Log        logConfig     `mapstructure:"log"`
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	root := &cobra.Command{
		Use:           "gui",
		Short:         "Headless host for the gui toolkit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(v, cfgFile)
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./gui.yaml)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newRenderCmd(v))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gui version %s\n", version)
		},
	})
	return root
}

func newRenderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a markup document to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to unmarshal config: %w", err)
			}
			if cfg.Markup == "" {
				return errors.New("--markup is required")
			}

			logger, err := newLogger(cfg.Log, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return render(cfg, logger)
		},
	}

	f := cmd.Flags()
	f.String("markup", "", "markup document to build")
	f.String("state", "", "JSON state document loaded before building")
	f.String("save-state", "", "write the final state document here")
	f.String("assets", "", "directory asset identifiers are resolved against")
	f.String("events", "", "JSON input script applied between frames")
	f.StringP("out", "o", "out.png", "PNG file the last frame is written to")
	f.Int("width", 800, "output width in pixels")
	f.Int("height", 600, "output height in pixels")
	f.Int("frames", 2, "number of frames to run")
	f.Duration("interval", 16*time.Millisecond, "time between frames")
	f.String("background", "", "clear color (default white)")
	f.Float64("font-size", 0, "default text size in pixels per em")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("log-format", "console", "console log format (console or json)")
	f.String("log-file", "", "also write JSON logs to this file")

	for key, flag := range map[string]string{
		"markup":     "markup",
		"state":      "state",
		"save_state": "save-state",
		"assets":     "assets",
		"events":     "events",
		"out":        "out",
		"width":      "width",
		"height":     "height",
		"frames":     "frames",
		"interval":   "interval",
		"background": "background",
		"font_size":  "font-size",
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	return cmd
}

// initializeConfig reads in the config file and GUI_ environment variables.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("gui")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GUI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

