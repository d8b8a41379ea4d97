// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the orquideira CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/orquideira/internal/logger"
	"github.com/pdiddy/orquideira/internal/secrets"
	"github.com/pdiddy/orquideira/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appCfg is the resolved configuration, filled before any command runs.
var appCfg types.AppConfig

// errReported marks a failure that was already shown to the user.
var errReported = errors.New("reported")

// rootCmd is the base command for the orquideira CLI.
var rootCmd = &cobra.Command{
	Use:   "orquideira",
	Short: "Find researchers and papers on Semantic Scholar and ORCID",
	Long: `orquideira searches Semantic Scholar for papers or authors. Author results
are enriched with education and publication history from ORCID.

Use search for a single query, browse for an interactive session, and
serve to expose the same operations over HTTP. A local catalog of sample
researchers backs the profile and dashboard commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAppConfig()
		if err != nil {
			return err
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		secrets.Apply(&cfg, s)
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.Log.Level = "debug"
		}
		logger.Setup(cfg.Log.Level, os.Stderr)

		appCfg = cfg
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./orquideira.yaml or ~/.config/orquideira/orquideira.yaml)")
	rootCmd.PersistentFlags().String("state-dir", "", "directory for the session key and preferences")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")
	_ = viper.BindPFlag("session.state_dir", rootCmd.PersistentFlags().Lookup("state-dir"))
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("orquideira")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "orquideira"))
		}
	}

	viper.SetEnvPrefix("ORQUIDEIRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
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
