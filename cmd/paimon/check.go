// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paimon/internal/provider"
)

var checkCmd = &cobra.Command{
	Use:   "check [urls...]",
	Short: "Report which known provider each URL belongs to",
	Long: `Check classifies each URL against the known provider domains without
making any network request. URLs that match no known domain are reported as
generic.`,
	RunE: runCheck,
}

func init() {
	addListFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	urls, err := collectURLs(args, listPath(cmd), listOptions(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, u := range urls {
		if d, ok := provider.MatchKnown(u); ok {
			fmt.Fprintf(out, "%s\t%s\n", d, u)
			continue
		}
		fmt.Fprintf(out, "generic\t%s\n", u)
	}
	return nil
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("list", "l", "", "read URLs from a .txt file, one per line")
	cmd.Flags().Bool("no-ignore", false, "keep lines marked !ignore")
	cmd.Flags().Bool("no-comments", false, "do not echo // comment lines from the list")
}
