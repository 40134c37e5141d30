// Package cmd implements the choreo CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var (
	cfgFile string
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "choreo",
	Short: "Choreo - animation sequencing and coordination engine",
	Long: `Choreo schedules, staggers, and cancels curve-driven timed tasks in
response to high-level intent: play a page entrance, play an exit, play a
micro-interaction. The CLI runs sequence configurations against a real
frame driver and reports timing metrics.

Use "choreo <command> --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "choreo: %v\n", err)
		return err
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/choreo/config.yaml)")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.Bool("no-animations", false, "disable all motion (every run is instant)")
	flags.Bool("reduced-motion", false, "dampen motion without disabling it")
	flags.Duration("frame-interval", 0, "frame driver step interval (0 = default)")
	flags.String("sequence-dir", "", "directory of user sequence YAML files")

	for _, key := range []string{"log-level", "no-animations", "reduced-motion", "frame-interval", "sequence-dir"} {
		if err := viper.BindPFlag(strings.ReplaceAll(key, "-", "_"), flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
}

func initConfig() error {
	viper.SetEnvPrefix("CHOREO")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(dir, "choreo"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func initLogger() error {
	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", viper.GetString("log_level"), err)
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}
