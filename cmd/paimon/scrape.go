// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paimon/internal/httputil"
	"github.com/pdiddy/paimon/internal/landing"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <page-url>",
	Short: "Download every PDF linked from a web page",
	Long: `Scrape fetches a page, collects the PDF documents it links to and
downloads them the same way the download command does. With --dry-run the
collected links are printed and nothing is fetched beyond the page itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	addFetchFlags(scrapeCmd)
	scrapeCmd.Flags().Bool("dry-run", false, "print the collected links without downloading")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyFetchFlags(cmd, &cfg.Fetch)

	extractor := landing.NewExtractor(httputil.NewClient(cfg.HTTP), cfg.HTTP)
	links, err := extractor.ScrapeLinks(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return fmt.Errorf("no PDF links found on %s", args[0])
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Found %d PDF link(s) on %s\n", len(links), args[0])

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		for _, l := range links {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	}
	return downloadAll(cmd, cfg, links)
}
