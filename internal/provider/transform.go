// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"net/url"
	"strings"
)

// ExtractIdentifier returns everything after the first path segment of a
// "scheme://host/segment/identifier" shaped URL. For a SciHub URL such as
// "https://sci-hub.se/10.1000/xyz123" that is the DOI "10.1000/xyz123".
// It returns "" when either separator is missing.
func ExtractIdentifier(rawURL string) string {
	i := strings.Index(rawURL, "/")
	if i < 0 || i+2 > len(rawURL) {
		return ""
	}
	rest := rawURL[i+2:]

	j := strings.Index(rest, "/")
	if j < 0 {
		return ""
	}
	return rest[j+1:]
}

// TransformGitHub rewrites a GitHub blob URL to its raw form. URLs that are
// not on github.com, or that already point at githubusercontent.com, are
// returned unchanged (after quote escaping).
func TransformGitHub(rawURL string) string {
	u := EscapeQuotes(rawURL)
	if !Matches(u, DomainGitHub) || Matches(u, DomainGitHubUserContent) {
		return u
	}
	return strings.ReplaceAll(u, "/blob/", "/raw/")
}

// TransformArxiv rewrites an abstract page link to its PDF link when the
// URL matches gate. Other URLs are returned unchanged (after quote escaping).
func TransformArxiv(rawURL string, gate Domain) string {
	u := EscapeQuotes(rawURL)
	if !Matches(u, gate) {
		return u
	}
	return strings.ReplaceAll(u, "/abs/", "/pdf/")
}

// defaultLocale is the locale label the export templates are written with.
const defaultLocale = "en."

// wikiExport builds the PDF export request for a Wikipedia-like article
// URL. The first host label replaces the template's locale and the last
// path segment is appended as the article name.
func wikiExport(rawURL, template string) (requestURI, filename string, ok bool) {
	host, article := splitArticleURL(rawURL)
	if host == "" || article == "" {
		return "", "", false
	}

	requestURI = template
	if locale := subdomain(host); locale != "" {
		requestURI = strings.Replace(template, defaultLocale, locale+".", 1)
	}
	requestURI += article

	name := article
	if unescaped, err := url.PathUnescape(article); err == nil && !strings.ContainsAny(unescaped, `/\`) {
		name = unescaped
	}
	return requestURI, name + ".pdf", true
}

// splitArticleURL returns the host and the escaped last path segment of
// rawURL. Links that net/url rejects, such as a title with a bare "%", are
// split on their separators and the segment is escaped here.
func splitArticleURL(rawURL string) (host, article string) {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Hostname(), lastSegment(u.EscapedPath())
	}

	rest := rawURL
	if i := strings.Index(rest, "//"); i >= 0 {
		rest = rest[i+2:]
	}
	rest, _, _ = strings.Cut(rest, "#")
	rest, _, _ = strings.Cut(rest, "?")
	host, p, ok := strings.Cut(rest, "/")
	if !ok {
		return host, ""
	}
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}
	return host, url.PathEscape(lastSegment(p))
}

// subdomain returns the first label of host when host has more than two
// labels ("fr.wikipedia.org" gives "fr").
func subdomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return ""
	}
	return labels[0]
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	return p[strings.LastIndex(p, "/")+1:]
}
