package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/pivot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the command tree. Every call gets its own viper instance
// and config, so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()
	cfg := pivot.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:           "pivot",
		Short:         "Move 2D and 3D cursors with the transform engine",
		Long:          `pivot runs interactive-style transform operations against the cursors of a workspace file and prints the resulting cursor state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cfgFile, &cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./pivot.yaml or ~/.config/pivot/pivot.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")
	flags.Int("workers", pivot.DEFAULT_WORKERS, "number of workers applying each tick")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("workers", flags.Lookup("workers"))

	rootCmd.AddCommand(newTransformCmd(&cfg))
	return rootCmd
}

func loadConfig(v *viper.Viper, cfgFile string, cfg *pivot.Config) error {
	defaults := pivot.DefaultConfig()
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("pseudoinverse_epsilon", defaults.PseudoInverseEpsilon)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", string(defaults.Log.Format))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pivot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pivot"))
		}
	}

	v.SetEnvPrefix("PIVOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}
