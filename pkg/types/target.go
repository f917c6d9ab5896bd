// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Target is the result of resolving a URL: where to fetch from and what to
// call the file on disk.
type Target struct {
	// SourceURL is the URL the caller asked to resolve.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// DownloadURI is the concrete location to fetch.
	DownloadURI string `json:"download_uri" yaml:"download_uri"`

	// Filename is the name the downloaded resource should be saved as.
	// It never contains a path separator.
	Filename string `json:"filename" yaml:"filename"`

	// Provider names the strategy that produced the target
	// (e.g. "wikipedia", "scihub", "generic").
	Provider string `json:"provider" yaml:"provider"`
}

// ManifestEntry records one downloaded file.
type ManifestEntry struct {
	Target `yaml:",inline"`

	// Path is the local filesystem path of the downloaded file.
	Path string `json:"path" yaml:"path"`

	// Skipped is true when the file already existed and was not fetched.
	Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
