// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paimon/internal/batch"
	"github.com/pdiddy/paimon/internal/fetch"
	"github.com/pdiddy/paimon/internal/httputil"
	"github.com/pdiddy/paimon/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download [urls...]",
	Short: "Resolve URLs and download the files",
	Long: `Download resolves each URL and saves the result into the output
directory under its resolved filename. Files that already exist are skipped.
With fetch.manifest enabled a manifest.yaml listing every target is written
next to the downloads.`,
	RunE: runDownload,
}

func init() {
	addListFlags(downloadCmd)
	addFetchFlags(downloadCmd)
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyFetchFlags(cmd, &cfg.Fetch)

	urls, err := collectURLs(args, listPath(cmd), listOptions(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return downloadAll(cmd, cfg, urls)
}

// downloadAll resolves and downloads urls, then writes the manifest when
// enabled.
func downloadAll(cmd *cobra.Command, cfg types.PipelineConfig, urls []string) error {
	client := httputil.NewClient(cfg.HTTP)
	resolver, err := newResolver(cfg, client)
	if err != nil {
		return err
	}
	downloader := fetch.NewDownloader(client, cfg.Fetch, cfg.HTTP)

	runner := &batch.Runner{
		Resolver:    resolver,
		Concurrency: cfg.Fetch.Concurrency,
		Handle:      downloader.Download,
		Out:         cmd.OutOrStdout(),
	}
	result := runner.Run(cmd.Context(), urls)

	if cfg.Fetch.Manifest {
		path, err := downloader.WriteManifest()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Manifest written to %s\n", path)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d URL(s) failed", result.Failed)
	}
	return nil
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("output-dir", "", "directory for downloaded files (default from fetch.output_dir)")
	cmd.Flags().Int("concurrency", 0, "maximum downloads in flight (default from fetch.concurrency)")
	cmd.Flags().Bool("manifest", false, "write manifest.yaml into the output directory (default from fetch.manifest)")
}

// applyFetchFlags overrides cfg with the fetch flags the user set.
func applyFetchFlags(cmd *cobra.Command, cfg *types.FetchConfig) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if n, _ := flags.GetInt("concurrency"); n > 0 {
		cfg.Concurrency = n
	}
	if flags.Changed("manifest") {
		cfg.Manifest, _ = flags.GetBool("manifest")
	}
}
