// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads resolved targets to disk and records them in a
// YAML manifest.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paimon/internal/httputil"
	"github.com/pdiddy/paimon/pkg/types"
)

// ManifestFile is the name of the manifest written into the output directory.
const ManifestFile = "manifest.yaml"

// Downloader writes targets into OutputDir.
type Downloader struct {
	Client    *http.Client
	OutputDir string
	UserAgent string

	mu       sync.Mutex
	claimed  map[string]struct{}
	manifest []types.ManifestEntry
}

// NewDownloader returns a Downloader for cfg.OutputDir.
func NewDownloader(client *http.Client, cfg types.FetchConfig, httpCfg types.HTTPConfig) *Downloader {
	dir := cfg.OutputDir
	if dir == "" {
		dir = types.DefaultOutputDir
	}
	return &Downloader{Client: client, OutputDir: dir, UserAgent: httpCfg.UserAgent}
}

// Download fetches t.DownloadURI into OutputDir/t.Filename. An existing
// file, or one another call is already writing, is left alone and reported
// as skipped. The download goes to a temporary file that is renamed into
// place on success.
func (d *Downloader) Download(ctx context.Context, t types.Target) (skipped bool, err error) {
	if t.Filename == "" || strings.ContainsAny(t.Filename, `/\`) {
		return false, fmt.Errorf("unsafe filename %q", t.Filename)
	}
	destPath := filepath.Join(d.OutputDir, t.Filename)

	if !d.claim(destPath) {
		d.record(t, destPath, true)
		return true, nil
	}

	if err := os.MkdirAll(d.OutputDir, 0o755); err != nil {
		d.release(destPath)
		return false, fmt.Errorf("creating directory %s: %w", d.OutputDir, err)
	}

	if err := d.downloadFile(ctx, t.DownloadURI, destPath); err != nil {
		d.release(destPath)
		return false, fmt.Errorf("downloading %s: %w", t.Filename, err)
	}
	d.record(t, destPath, false)
	return false, nil
}

// claim reserves destPath for one caller. It fails when the file exists or
// another Download holds the path.
func (d *Downloader) claim(destPath string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.claimed[destPath]; busy {
		return false
	}
	if _, err := os.Stat(destPath); err == nil {
		return false
	}
	if d.claimed == nil {
		d.claimed = make(map[string]struct{})
	}
	d.claimed[destPath] = struct{}{}
	return true
}

// release drops a claim after a failed download so a later attempt can retry.
func (d *Downloader) release(destPath string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.claimed, destPath)
}

func (d *Downloader) downloadFile(ctx context.Context, url, destPath string) error {
	resp, err := httputil.Get(ctx, d.Client, url, d.UserAgent)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".paimon-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (d *Downloader) record(t types.Target, path string, skipped bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.manifest = append(d.manifest, types.ManifestEntry{Target: t, Path: path, Skipped: skipped})
}

// Entries returns the recorded downloads sorted by filename.
func (d *Downloader) Entries() []types.ManifestEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := append([]types.ManifestEntry(nil), d.manifest...)
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// WriteManifest writes the recorded entries to OutputDir/manifest.yaml.
func (d *Downloader) WriteManifest() (string, error) {
	if err := os.MkdirAll(d.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", d.OutputDir, err)
	}
	path := filepath.Join(d.OutputDir, ManifestFile)
	data, err := yaml.Marshal(d.Entries())
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) ([]types.ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []types.ManifestEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return entries, nil
}
