// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scihub looks up papers by DOI on a SciHub mirror.
package scihub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/paimon/internal/httputil"
	"github.com/pdiddy/paimon/pkg/types"
)

var (
	// ErrEmptyIdentifier is returned for a blank identifier; no request is made.
	ErrEmptyIdentifier = errors.New("empty identifier")

	// ErrNotFound is returned when the mirror has no article for the identifier.
	ErrNotFound = errors.New("article not found on mirror")
)

// articleSelector matches the PDF viewer the mirror renders for a known paper.
const articleSelector = `#pdf, #article embed, #article iframe, embed[type="application/pdf"]`

// Client queries a single mirror.
type Client struct {
	HTTP      *http.Client
	Mirror    string
	UserAgent string
}

// NewClient returns a Client for cfg.SciHubMirror.
func NewClient(client *http.Client, cfg types.ResolverConfig, httpCfg types.HTTPConfig) *Client {
	mirror := cfg.SciHubMirror
	if mirror == "" {
		mirror = types.DefaultSciHubMirror
	}
	return &Client{HTTP: client, Mirror: mirror, UserAgent: httpCfg.UserAgent}
}

// LookupByIdentifier fetches the mirror page for id and returns its final
// URL (after redirects) when the page carries an article viewer.
func (c *Client) LookupByIdentifier(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyIdentifier
	}

	pageURL := strings.TrimRight(c.Mirror, "/") + "/" + escapeIdentifier(id)
	resp, err := httputil.Get(ctx, c.HTTP, pageURL, c.UserAgent)
	if err != nil {
		return "", fmt.Errorf("SciHub request: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing SciHub page: %w", err)
	}
	if doc.Find(articleSelector).Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return resp.Request.URL.String(), nil
}

// escapeIdentifier escapes each segment of a DOI while keeping its slashes.
func escapeIdentifier(id string) string {
	parts := strings.Split(id, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
