// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paimon/internal/fetch"
	"github.com/pdiddy/paimon/pkg/types"
)

func newPaperSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/reading", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<a href="/files/a.pdf">a</a> <a href="/files/b.pdf">b</a> <a href="/about">about</a>`))
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 " + r.URL.Path))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// useCommand points cmd at fresh buffers and flag values for one test.
func useCommand(t *testing.T, cmd *cobra.Command, flags map[string]string) (stdout *bytes.Buffer) {
	t.Helper()
	stdout = &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetContext(context.Background())
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	return stdout
}

func TestScrapeDryRun(t *testing.T) {
	ts := newPaperSite(t)
	out := useCommand(t, scrapeCmd, map[string]string{"dry-run": "true"})

	require.NoError(t, runScrape(scrapeCmd, []string{ts.URL + "/reading"}))
	assert.Equal(t, ts.URL+"/files/a.pdf\n"+ts.URL+"/files/b.pdf\n", out.String())
}

func TestScrapeDownloads(t *testing.T) {
	ts := newPaperSite(t)
	dir := t.TempDir()
	out := useCommand(t, scrapeCmd, map[string]string{"output-dir": dir, "manifest": "true"})

	require.NoError(t, runScrape(scrapeCmd, []string{ts.URL + "/reading"}))
	assert.Contains(t, out.String(), "Batch summary: 2 done, 0 skipped, 0 failed (total: 2)")

	data, err := os.ReadFile(filepath.Join(dir, "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 /files/a.pdf", string(data))

	entries, err := fetch.ReadManifest(filepath.Join(dir, fetch.ManifestFile))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ts.URL+"/files/b.pdf", entries[1].SourceURL)
}

func TestScrapeNoLinks(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<p>nothing</p>`))
	}))
	defer ts.Close()
	useCommand(t, scrapeCmd, nil)

	err := runScrape(scrapeCmd, []string{ts.URL})
	assert.ErrorContains(t, err, "no PDF links found")
}

func TestApplyFetchFlags(t *testing.T) {
	useCommand(t, downloadCmd, map[string]string{"output-dir": "papers", "concurrency": "8", "manifest": "false"})

	cfg := types.DefaultPipelineConfig().Fetch
	applyFetchFlags(downloadCmd, &cfg)
	assert.Equal(t, "papers", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.False(t, cfg.Manifest)
}

func TestApplyFetchFlagsKeepsConfig(t *testing.T) {
	useCommand(t, downloadCmd, nil)

	cfg := types.FetchConfig{OutputDir: "from-config", Concurrency: 2, Manifest: true}
	applyFetchFlags(downloadCmd, &cfg)
	assert.Equal(t, types.FetchConfig{OutputDir: "from-config", Concurrency: 2, Manifest: true}, cfg)
}
