// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch resolves many URLs concurrently and optionally hands each
// resolved target to a follow-up step such as a download.
package batch

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paimon/internal/logger"
	"github.com/pdiddy/paimon/internal/provider"
	"github.com/pdiddy/paimon/pkg/types"
)

const defaultConcurrency = 4

// Resolver is the part of *provider.Resolver the runner needs.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (types.Target, error)
	TransformArxiv(rawURL string) string
}

// HandleFunc processes a resolved target. skipped reports that the work
// was already done (e.g. the file exists).
type HandleFunc func(ctx context.Context, t types.Target) (skipped bool, err error)

// Item is the outcome for one input URL.
type Item struct {
	URL     string
	Target  types.Target
	Skipped bool
	Err     error
}

// Result holds the outcome of a batch run, in input order.
type Result struct {
	Items   []Item
	Done    int
	Skipped int
	Failed  int
}

// Total returns the number of URLs processed.
func (r Result) Total() int {
	return r.Done + r.Skipped + r.Failed
}

// HasFailures reports whether any URL failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Runner drives a batch.
type Runner struct {
	Resolver    Resolver
	Concurrency int
	// Handle runs after a successful resolution. Nil means resolve only.
	Handle HandleFunc
	// Out receives one status line per URL and a summary.
	Out io.Writer
}

// Preprocess applies the direct arXiv and GitHub rewrites that run before
// dispatch.
func Preprocess(r Resolver, rawURL string) string {
	return provider.TransformGitHub(r.TransformArxiv(rawURL))
}

// Run processes urls with at most Concurrency in flight. A failure for one
// URL does not stop the others.
func (b *Runner) Run(ctx context.Context, urls []string) Result {
	limit := b.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	out := b.Out
	if out == nil {
		out = io.Discard
	}

	items := make([]Item, len(urls))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, u := range urls {
		g.Go(func() error {
			items[i] = b.process(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	var result Result
	for _, it := range items {
		switch {
		case it.Err != nil:
			fmt.Fprintf(out, "failed:   %s (%v)\n", it.URL, it.Err)
			result.Failed++
		case it.Skipped:
			fmt.Fprintf(out, "skipped:  %s (%s already exists)\n", it.URL, it.Target.Filename)
			result.Skipped++
		default:
			fmt.Fprintf(out, "resolved: %s\t%s\t%s\n", it.URL, it.Target.DownloadURI, it.Target.Filename)
			result.Done++
		}
	}
	result.Items = items

	fmt.Fprintf(out, "\nBatch summary: %d done, %d skipped, %d failed (total: %d)\n",
		result.Done, result.Skipped, result.Failed, result.Total())
	return result
}

func (b *Runner) process(ctx context.Context, rawURL string) Item {
	ctx = logger.WithFields(ctx, zap.String("url", rawURL))
	it := Item{URL: rawURL}

	pre := Preprocess(b.Resolver, rawURL)
	if pre != rawURL {
		logger.Debug(ctx, "rewrote url", zap.String("rewritten", pre))
	}

	t, err := b.Resolver.Resolve(ctx, pre)
	if err != nil {
		logger.Warn(ctx, "resolution failed", zap.Error(err), zap.Bool("retryable", provider.IsRetryable(err)))
		it.Err = err
		return it
	}
	t.SourceURL = rawURL
	it.Target = t
	logger.Debug(ctx, "resolved", zap.String("provider", t.Provider), zap.String("download_uri", t.DownloadURI))

	if b.Handle == nil {
		return it
	}
	skipped, err := b.Handle(ctx, t)
	if err != nil {
		logger.Warn(ctx, "handler failed", zap.Error(err))
		it.Err = err
		return it
	}
	it.Skipped = skipped
	return it
}
