// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paimon CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paimon/internal/logger"
	"github.com/pdiddy/paimon/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paimon CLI.
var rootCmd = &cobra.Command{
	Use:   "paimon",
	Short: "Resolve paper, wiki and repository links into downloadable files",
	Long: `paimon turns the links you paste (SciHub DOIs, Wikipedia and Wikisource
articles, GitHub blobs, arXiv abstract pages or any direct URL) into a concrete
download location and a filename, and can download the results.

URLs are given as arguments or read from a .txt list with --list.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		return logger.Setup(viper.GetString("log.environment"), verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paimon.yaml or ~/.config/paimon/paimon.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paimon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "paimon"))
		}
	}

	viper.SetEnvPrefix("PAIMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables and
// Unmarshal see them even without a config file.
func setDefaults(v *viper.Viper) {
	d := types.DefaultPipelineConfig()

	v.SetDefault("log.environment", logger.Development)

	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)

	v.SetDefault("resolver.arxiv_gate", d.Resolver.ArxivGate)
	v.SetDefault("resolver.wikipedia_template", d.Resolver.WikipediaTemplate)
	v.SetDefault("resolver.wikisource_template", d.Resolver.WikisourceTemplate)
	v.SetDefault("resolver.lookup_backend", string(d.Resolver.LookupBackend))
	v.SetDefault("resolver.scihub_mirror", d.Resolver.SciHubMirror)
	v.SetDefault("resolver.openalex_base", d.Resolver.OpenAlexBase)
	v.SetDefault("resolver.openalex_mailto", d.Resolver.OpenAlexMailto)

	v.SetDefault("fetch.output_dir", d.Fetch.OutputDir)
	v.SetDefault("fetch.concurrency", d.Fetch.Concurrency)
	v.SetDefault("fetch.manifest", d.Fetch.Manifest)
}

// loadConfig decodes the merged viper settings.
func loadConfig(v *viper.Viper) (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
