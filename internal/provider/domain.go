// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider turns an arbitrary URL into a download location and a
// filename. Each known site (Wikipedia, Wikisource, SciHub, GitHub,
// arXiv-style preprint servers) has its own rewrite rule; anything else is
// passed through and named by probing the remote resource.
package provider

import "strings"

// Domain identifies a provider host pattern.
type Domain int

const (
	DomainWikipedia Domain = iota
	DomainSciHub
	DomainGitHub
	DomainGitHubUserContent
	DomainWikisource

	// DomainArxiv is not part of KnownDomains. It exists so the arXiv
	// rewrite can be gated on the preprint host instead of SciHub.
	DomainArxiv
)

// KnownDomains is the fixed set of provider patterns, in priority order.
var KnownDomains = []Domain{
	DomainWikipedia,
	DomainSciHub,
	DomainGitHub,
	DomainGitHubUserContent,
	DomainWikisource,
}

// Pattern returns the substring that marks a URL as belonging to d.
func (d Domain) Pattern() string {
	switch d {
	case DomainWikipedia:
		return "wikipedia.org"
	case DomainSciHub:
		return "sci-hub.se"
	case DomainGitHub:
		return "github.com"
	case DomainGitHubUserContent:
		return "githubusercontent.com"
	case DomainWikisource:
		return "wikisource.org"
	case DomainArxiv:
		return "arxiv.org"
	default:
		return ""
	}
}

func (d Domain) String() string {
	switch d {
	case DomainWikipedia:
		return "wikipedia"
	case DomainSciHub:
		return "scihub"
	case DomainGitHub:
		return "github"
	case DomainGitHubUserContent:
		return "githubusercontent"
	case DomainWikisource:
		return "wikisource"
	case DomainArxiv:
		return "arxiv"
	default:
		return "unknown"
	}
}

// ParseDomain maps a host pattern such as "sci-hub.se" back to its Domain.
func ParseDomain(pattern string) (Domain, bool) {
	pattern = strings.TrimSpace(pattern)
	for _, d := range KnownDomains {
		if d.Pattern() == pattern {
			return d, true
		}
	}
	if pattern == DomainArxiv.Pattern() {
		return DomainArxiv, true
	}
	return 0, false
}

// Matches reports whether url contains the pattern of d. The check is a
// case-sensitive substring match; callers escape quotes first.
func Matches(url string, d Domain) bool {
	p := d.Pattern()
	return p != "" && strings.Contains(url, p)
}

// IsKnownProvider reports whether url contains any of KnownDomains.
func IsKnownProvider(url string) bool {
	_, ok := MatchKnown(url)
	return ok
}

// MatchKnown returns the first domain of KnownDomains found in url.
func MatchKnown(url string) (Domain, bool) {
	for _, d := range KnownDomains {
		if Matches(url, d) {
			return d, true
		}
	}
	return 0, false
}

var quoteEscaper = strings.NewReplacer(`"`, "%22", `'`, "%27")

// EscapeQuotes percent-encodes embedded quote characters.
func EscapeQuotes(url string) string {
	return quoteEscaper.Replace(url)
}
