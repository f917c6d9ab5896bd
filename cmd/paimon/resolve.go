// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paimon/internal/batch"
	"github.com/pdiddy/paimon/internal/httputil"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [urls...]",
	Short: "Print the download URI and filename for each URL",
	Long: `Resolve maps each URL to a provider (Wikipedia, Wikisource, SciHub or a
generic direct link) and prints one tab-separated line per URL:

  resolved: <source>	<download uri>	<filename>

Nothing is written to disk.`,
	RunE: runResolve,
}

func init() {
	addListFlags(resolveCmd)
	resolveCmd.Flags().Int("concurrency", 0, "maximum resolutions in flight (default from fetch.concurrency)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		cfg.Fetch.Concurrency = n
	}

	urls, err := collectURLs(args, listPath(cmd), listOptions(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	resolver, err := newResolver(cfg, httputil.NewClient(cfg.HTTP))
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Resolver:    resolver,
		Concurrency: cfg.Fetch.Concurrency,
		Out:         cmd.OutOrStdout(),
	}
	result := runner.Run(cmd.Context(), urls)
	if result.HasFailures() {
		return fmt.Errorf("%d URL(s) failed to resolve", result.Failed)
	}
	return nil
}
