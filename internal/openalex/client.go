// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex looks up open-access copies of papers by DOI.
package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/paimon/internal/httputil"
	"github.com/pdiddy/paimon/pkg/types"
)

// ErrNoOpenAccess is returned when OpenAlex knows the work but lists no
// open-access location for it.
var ErrNoOpenAccess = errors.New("no open-access location")

// workResponse captures the fields we need from an OpenAlex work record.
type workResponse struct {
	BestOALocation *location `json:"best_oa_location"`
}

// location represents an open-access location in the OpenAlex response.
type location struct {
	PDFURL     string `json:"pdf_url"`
	LandingURL string `json:"landing_page_url"`
}

// Client queries the OpenAlex works endpoint.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	Mailto    string
	UserAgent string
}

// NewClient returns a Client for cfg.OpenAlexBase.
func NewClient(client *http.Client, cfg types.ResolverConfig, httpCfg types.HTTPConfig) *Client {
	base := cfg.OpenAlexBase
	if base == "" {
		base = types.DefaultOpenAlexBase
	}
	return &Client{HTTP: client, BaseURL: base, Mailto: cfg.OpenAlexMailto, UserAgent: httpCfg.UserAgent}
}

// LookupByIdentifier returns the open-access PDF URL for a DOI, or the
// landing page URL when OpenAlex has no direct PDF link. The landing
// extractor handles both: a PDF URL is detected and returned unchanged.
func (c *Client) LookupByIdentifier(ctx context.Context, doi string) (string, error) {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return "", errors.New("empty DOI")
	}

	apiURL := c.BaseURL + "https://doi.org/" + escapeDOI(doi)
	if c.Mailto != "" {
		apiURL += "?mailto=" + url.QueryEscape(c.Mailto)
	}

	resp, err := httputil.Get(ctx, c.HTTP, apiURL, c.UserAgent)
	if err != nil {
		return "", fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	var work workResponse
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		return "", fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	loc := work.BestOALocation
	if loc == nil {
		return "", fmt.Errorf("%w for %s", ErrNoOpenAccess, doi)
	}
	if loc.PDFURL != "" {
		return loc.PDFURL, nil
	}
	if loc.LandingURL != "" {
		return loc.LandingURL, nil
	}
	return "", fmt.Errorf("%w for %s", ErrNoOpenAccess, doi)
}

// escapeDOI escapes each segment of a DOI while keeping its slashes.
func escapeDOI(doi string) string {
	parts := strings.Split(doi, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
