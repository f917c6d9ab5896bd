// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package remote learns what a remote resource should be called on disk
// without downloading it.
package remote

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/paimon/internal/httputil"
	"github.com/pdiddy/paimon/pkg/types"
)

// Prober issues HEAD requests to derive filenames.
type Prober struct {
	Client    *http.Client
	UserAgent string
}

// NewProber returns a Prober sending cfg.UserAgent.
func NewProber(client *http.Client, cfg types.HTTPConfig) *Prober {
	return &Prober{Client: client, UserAgent: cfg.UserAgent}
}

// ProbeFilename returns the filename for rawURL. Servers that reject HEAD
// with 405 or 501 are asked again with GET and the body is discarded
// unread. A non-2xx status is an error.
func (p *Prober) ProbeFilename(ctx context.Context, rawURL string) (string, error) {
	resp, err := p.head(ctx, rawURL)
	if err != nil {
		return "", err
	}
	resp.Body.Close()

	return FilenameFromResponse(resp)
}

func (p *Prober) head(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := httputil.NewRequest(ctx, http.MethodHead, rawURL, p.UserAgent)
	if err != nil {
		return nil, err
	}
	resp, err := httputil.Do(p.Client, req)

	var se *httputil.StatusError
	if errors.As(err, &se) && (se.StatusCode == http.StatusMethodNotAllowed || se.StatusCode == http.StatusNotImplemented) {
		return httputil.Get(ctx, p.Client, rawURL, p.UserAgent)
	}
	return resp, err
}

// FilenameFromResponse picks a filename from the Content-Disposition header,
// falling back to the last path segment of the final (post-redirect) URL.
// A name without an extension gets the one registered for the response
// Content-Type, if any.
func FilenameFromResponse(resp *http.Response) (string, error) {
	if name := dispositionFilename(resp.Header.Get("Content-Disposition")); name != "" {
		return name, nil
	}

	var u *url.URL
	if resp.Request != nil {
		u = resp.Request.URL
	}
	name := urlFilename(u)
	if name == "" {
		return "", fmt.Errorf("cannot determine filename for %s", u)
	}

	if filepath.Ext(name) == "" {
		name += extensionFor(resp.Header.Get("Content-Type"))
	}
	return name, nil
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return safeBase(params["filename"])
}

func urlFilename(u *url.URL) string {
	if u == nil {
		return ""
	}
	return safeBase(u.Path)
}

// safeBase strips any directory part so the result never carries a path
// separator.
func safeBase(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	switch base {
	case ".", "/", "..":
		return ""
	}
	return base
}

func extensionFor(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if m := mimetype.Lookup(mediaType); m != nil {
		return m.Extension()
	}
	return ""
}
