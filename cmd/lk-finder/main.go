// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lk-finder CLI, which fills a
// spreadsheet of company names with LinkedIn company-page URLs found through
// the Google Custom Search JSON API.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Ketketm/linkedin-company-link-finder/internal/logger"
	"github.com/Ketketm/linkedin-company-link-finder/internal/secrets"
	"github.com/Ketketm/linkedin-company-link-finder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	secretsDir           = ".secrets"
	defaultCompaniesFile = "LK-company-finder.xlsx"
	defaultKeysFile      = "api_keys.xlsx"
)

var (
	// loadedSecrets holds API credentials loaded from .secrets/ at startup.
	loadedSecrets = secrets.Secrets{}

	// zlog is the process logger, built once flags and config are read.
	zlog = zap.NewNop()
)

// rootCmd is the base command for the lk-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "lk-finder",
	Short: "Find LinkedIn company pages for a spreadsheet of companies",
	Long: `lk-finder reads a spreadsheet of company names, searches each one with the
Google Custom Search JSON API and writes the LinkedIn company-page URL back
into the Linkedin_URL column of the same file.

API keys are read from a credentials spreadsheet (columns "key" and "cx") and
used in order: when a key reaches its daily quota the next one takes over.
Relative paths are resolved against --base-dir, or the directory of the
lk-finder executable when --base-dir is not set.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(types.LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		})
		if err != nil {
			return err
		}
		zlog = l

		base, err := baseDir()
		if err != nil {
			return err
		}
		s, err := secrets.Load(filepath.Join(base, secretsDir))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			zlog.Debug("loaded secrets", zap.Strings("names", s.Names()))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lk-finder.yaml or ~/.config/lk-finder/lk-finder.yaml)")
	rootCmd.PersistentFlags().String("base-dir", "", "directory relative paths are resolved against (default: the executable's directory)")
	rootCmd.PersistentFlags().String("companies", defaultCompaniesFile, "company spreadsheet (.xlsx or .csv), updated in place")
	rootCmd.PersistentFlags().String("keys", defaultKeysFile, "credentials spreadsheet with key and cx columns")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	mustBind("base_dir", rootCmd.PersistentFlags().Lookup("base-dir"))
	mustBind("enrich.companies_file", rootCmd.PersistentFlags().Lookup("companies"))
	mustBind("enrich.keys_file", rootCmd.PersistentFlags().Lookup("keys"))
	mustBind("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lk-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lk-finder"))
		}
	}

	viper.SetEnvPrefix("LK_FINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = zlog.Sync()
	if err != nil {
		os.Exit(1)
	}
}
