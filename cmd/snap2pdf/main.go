// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the snap2pdf CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/snap2pdf/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// configErr records a failure to read an explicitly named config file.
var configErr error

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when it is set, otherwise the secret value
// for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

var rootCmd = &cobra.Command{
	Use:   "snap2pdf",
	Short: "Turn a set of photos into a multi-page PDF",
	Long: `snap2pdf collects images, lets you put them in order, and assembles
them into a PDF with one image per page. The document is written to the
document directory under the chosen name and handed to a share target.

Pick images by path or directory, or list them in a YAML manifest. Use
--arrange to reorder and prune the selection interactively before export.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = log.DebugLevel
		}
		logger := newLogger(os.Stderr, level)
		cmd.SetContext(withLogger(cmd.Context(), logger))

		if configErr != nil {
			return configErr
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(afero.NewOsFs(), dir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./snap2pdf.yaml or ~/.config/snap2pdf/snap2pdf.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory holding share credentials")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("snap2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "snap2pdf"))
		}
	}

	viper.SetEnvPrefix("SNAP2PDF")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		configErr = fmt.Errorf("reading config %s: %w", cfgFile, err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
