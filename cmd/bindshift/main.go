// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bindshift CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bindshift/internal/history"
	"github.com/pdiddy/bindshift/internal/logging"
	"github.com/pdiddy/bindshift/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bindshift CLI.
var rootCmd = &cobra.Command{
	Use:   "bindshift",
	Short: "Shift odd and even PDF pages apart for a binding margin",
	Long: `bindshift moves the content of alternating PDF pages horizontally so that a
printed, double-sided document leaves room for binding. Pages in the chosen
range alternate between a move to the right and a move to the left; pages
outside the range are copied unchanged.

The shift command processes one file, batch runs a job file, ui opens an
interactive form, and serve exposes the transform over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := viper.GetString("log.level")
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		logger := logging.New(os.Stderr, logging.ParseLevel(level))
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bindshift.yaml or ~/.config/bindshift/bindshift.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bindshift")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bindshift"))
		}
	}

	viper.SetEnvPrefix("BINDSHIFT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Reading config file:", err)
		}
	}
}

// setDefaults registers the built-in value of every config key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("shift.shift_cm", 1.0)
	v.SetDefault("shift.start_page", 1)
	v.SetDefault("shift.first_right", true)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.dir", history.DefaultDir())
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_bytes", 64<<20)
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("secrets.dir", secrets.DefaultDir)
	v.SetDefault("log.level", "info")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
