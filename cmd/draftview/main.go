// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the draftview CLI. It fetches the
// draft generated by the research-analysis backend, splits it into
// sections, and previews or exports them.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/draftview/internal/export"
	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultBackendURL = "http://localhost:8000"
	defaultTimeout    = 60 * time.Second
	defaultUserAgent  = "draftview/0.1"
	defaultAddr       = ":8080"
)

// rootCmd is the base command for the draftview CLI.
var rootCmd = &cobra.Command{
	Use:   "draftview",
	Short: "Preview and export research drafts generated by the analysis backend",
	Long: `draftview presents the draft produced by the research-analysis backend.
It splits the flat draft text into abstract, methods, results, and references
sections, previews them in the terminal or a local web page, and exports them
as plain text or PDF.

The draft is read from a file, from stdin ("-"), or fetched from the backend's
/api/draft endpoint when no file is given.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./draftview.yaml or ~/.config/draftview/draftview.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().String("backend-url", "", "base URL of the analysis backend (default "+defaultBackendURL+")")
	rootCmd.PersistentFlags().Duration("timeout", 0, "backend request timeout (default 60s)")

	viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend-url"))
	viper.BindPFlag("backend.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("draftview")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "draftview"))
		}
	}

	viper.SetDefault("backend.url", defaultBackendURL)
	viper.SetDefault("backend.timeout", defaultTimeout)
	viper.SetDefault("backend.user_agent", defaultUserAgent)
	viper.SetDefault("export.title", export.DefaultTitle)
	viper.SetDefault("export.generator", export.DefaultGenerator)
	viper.SetDefault("export.font_file", "")
	viper.SetDefault("serve.addr", defaultAddr)

	viper.SetEnvPrefix("DRAFTVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = defaultTimeout
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
