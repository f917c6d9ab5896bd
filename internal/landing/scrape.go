// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package landing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/paimon/internal/httputil"
)

// ScrapeLinks fetches pageURL and returns the absolute URLs of every PDF it
// links to, in document order and without duplicates.
func (x *Extractor) ScrapeLinks(ctx context.Context, pageURL string) ([]string, error) {
	resp, err := httputil.Get(ctx, x.Client, pageURL, x.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return DocumentLinks(doc, resp.Request.URL), nil
}

// DocumentLinks collects the a[href] targets in doc whose path ends in .pdf,
// resolved against base. Links that do not resolve to http or https are
// dropped.
func DocumentLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]struct{})
	doc.Find(`a[href]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil || !strings.HasSuffix(strings.ToLower(ref.Path), ".pdf") {
			return
		}
		abs, err := absolute(base, ref.String())
		if err != nil || !(strings.HasPrefix(abs, "http://") || strings.HasPrefix(abs, "https://")) {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})
	return links
}
