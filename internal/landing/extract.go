// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package landing finds the direct download link on a paper's landing page.
package landing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/paimon/internal/httputil"
	"github.com/pdiddy/paimon/pkg/types"
)

// ErrNoLink is returned when a landing page carries no recognizable PDF link.
var ErrNoLink = errors.New("no PDF link on landing page")

// sniffLen is how much of the body is read to decide whether the landing
// URL already serves the PDF.
const sniffLen = 3072

// onclickPattern pulls the target out of `location.href='...'` handlers.
var onclickPattern = regexp.MustCompile(`location\.href\s*=\s*['"]([^'"]+)['"]`)

// Extractor fetches landing pages and scrapes their PDF link.
type Extractor struct {
	Client    *http.Client
	UserAgent string
}

// NewExtractor returns an Extractor sending cfg.UserAgent.
func NewExtractor(client *http.Client, cfg types.HTTPConfig) *Extractor {
	return &Extractor{Client: client, UserAgent: cfg.UserAgent}
}

// ExtractDownloadURL fetches landingURL and returns the absolute URL of the
// PDF it links to. If the landing URL itself serves a PDF, it is returned
// as is.
func (x *Extractor) ExtractDownloadURL(ctx context.Context, landingURL string) (string, error) {
	resp, err := httputil.Get(ctx, x.Client, landingURL, x.UserAgent)
	if err != nil {
		return "", fmt.Errorf("fetching landing page: %w", err)
	}
	defer resp.Body.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(resp.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading landing page: %w", err)
	}
	head = head[:n]

	base := resp.Request.URL
	if mimetype.Detect(head).Is("application/pdf") {
		return base.String(), nil
	}

	doc, err := goquery.NewDocumentFromReader(io.MultiReader(bytes.NewReader(head), resp.Body))
	if err != nil {
		return "", fmt.Errorf("parsing landing page: %w", err)
	}

	link := FindPDFLink(doc)
	if link == "" {
		return "", ErrNoLink
	}
	return absolute(base, link)
}

// linkSelectors are tried in order; the first non-empty attribute wins.
var linkSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[name="citation_pdf_url"]`, "content"},
	{`embed#pdf`, "src"},
	{`iframe#pdf`, "src"},
	{`#pdf[src]`, "src"},
	{`embed[type="application/pdf"]`, "src"},
	{`object[type="application/pdf"]`, "data"},
	{`iframe[src*=".pdf"]`, "src"},
}

// FindPDFLink returns the raw (possibly relative) PDF link in doc, or "".
func FindPDFLink(doc *goquery.Document) string {
	for _, ls := range linkSelectors {
		if v, ok := doc.Find(ls.selector).First().Attr(ls.attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	var link string
	doc.Find(`button[onclick], a[onclick]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		onclick, _ := s.Attr("onclick")
		if m := onclickPattern.FindStringSubmatch(onclick); m != nil {
			link = m[1]
			return false
		}
		return true
	})
	if link != "" {
		return link
	}

	doc.Find(`a[href]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if u, err := url.Parse(href); err == nil && strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
			link = href
			return false
		}
		return true
	})
	return link
}

// absolute resolves link against base. Protocol-relative links inherit the
// base scheme; fragments (viewer hints such as #navpanes=0) are dropped.
func absolute(base *url.URL, link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", link, err)
	}
	u := base.ResolveReference(ref)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}
