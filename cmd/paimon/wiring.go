// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paimon/internal/landing"
	"github.com/pdiddy/paimon/internal/openalex"
	"github.com/pdiddy/paimon/internal/provider"
	"github.com/pdiddy/paimon/internal/readlist"
	"github.com/pdiddy/paimon/internal/remote"
	"github.com/pdiddy/paimon/internal/scihub"
	"github.com/pdiddy/paimon/pkg/types"
)

// newResolver builds a Resolver with the network collaborators selected by cfg.
func newResolver(cfg types.PipelineConfig, client *http.Client) (*provider.Resolver, error) {
	var lookup provider.Lookup
	switch cfg.Resolver.LookupBackend {
	case types.LookupSciHub, "":
		lookup = scihub.NewClient(client, cfg.Resolver, cfg.HTTP)
	case types.LookupOpenAlex:
		lookup = openalex.NewClient(client, cfg.Resolver, cfg.HTTP)
	default:
		return nil, fmt.Errorf("unknown lookup backend %q", cfg.Resolver.LookupBackend)
	}

	return provider.New(cfg.Resolver,
		provider.WithLookup(lookup),
		provider.WithLinkExtractor(landing.NewExtractor(client, cfg.HTTP)),
		provider.WithProber(remote.NewProber(client, cfg.HTTP)),
	)
}

// collectURLs merges positional URLs with the contents of an optional list
// file. Invalid list lines are reported to warn and dropped.
func collectURLs(args []string, listPath string, opts readlist.Options, warn io.Writer) ([]string, error) {
	urls := append([]string(nil), args...)

	if listPath != "" {
		list, err := readlist.ReadFile(listPath, opts)
		if err != nil {
			return nil, err
		}
		for _, bad := range list.Invalid {
			fmt.Fprintf(warn, "skipping invalid URL in %s: %s\n", listPath, bad)
		}
		if list.Ignored > 0 {
			fmt.Fprintf(warn, "%d URL(s) marked !ignore in %s\n", list.Ignored, listPath)
		}
		for _, c := range list.Comments {
			fmt.Fprintf(warn, "# %s\n", c)
		}
		urls = append(urls, list.URLs...)
	}

	if len(urls) == 0 {
		return nil, errors.New("provide one or more URLs or a list file with --list")
	}
	return urls, nil
}

func listPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("list")
	return p
}

func listOptions(cmd *cobra.Command) readlist.Options {
	noIgnore, _ := cmd.Flags().GetBool("no-ignore")
	noComments, _ := cmd.Flags().GetBool("no-comments")
	return readlist.Options{NoIgnore: noIgnore, NoComments: noComments}
}
