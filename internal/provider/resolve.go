// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paimon/pkg/types"
)

// Provider names reported in types.Target.Provider and in errors.
const (
	NameWikipedia  = "wikipedia"
	NameWikisource = "wikisource"
	NameSciHub     = "scihub"
	NameGeneric    = "generic"
)

// Lookup resolves a provider identifier (e.g. a DOI) to the URL of a
// landing page hosting the resource.
type Lookup interface {
	LookupByIdentifier(ctx context.Context, id string) (string, error)
}

// LinkExtractor finds the direct download URL on a landing page.
type LinkExtractor interface {
	ExtractDownloadURL(ctx context.Context, landingURL string) (string, error)
}

// Prober determines the filename a remote resource should be saved as.
type Prober interface {
	ProbeFilename(ctx context.Context, url string) (string, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup sets the identifier lookup client used for SciHub URLs.
func WithLookup(l Lookup) Option { return func(r *Resolver) { r.lookup = l } }

// WithLinkExtractor sets the landing page extractor used for SciHub URLs.
func WithLinkExtractor(x LinkExtractor) Option { return func(r *Resolver) { r.extractor = x } }

// WithProber sets the filename probe.
func WithProber(p Prober) Option { return func(r *Resolver) { r.prober = p } }

// route binds a domain to its strategy. Resolve walks routes in order and
// the first match wins.
type route struct {
	domain  Domain
	resolve func(r *Resolver, ctx context.Context, rawURL string) (types.Target, error)
}

var routes = []route{
	{DomainWikipedia, (*Resolver).resolveWikipedia},
	{DomainWikisource, (*Resolver).resolveWikisource},
	{DomainSciHub, (*Resolver).resolveSciHub},
}

// Resolver dispatches URLs to provider strategies. It holds no mutable
// state after New returns and is safe for concurrent use.
type Resolver struct {
	cfg       types.ResolverConfig
	arxivGate Domain
	lookup    Lookup
	extractor LinkExtractor
	prober    Prober
}

// New builds a Resolver. Empty config fields fall back to the defaults of
// types.DefaultResolverConfig. An arxiv gate that names no known domain is
// an error.
func New(cfg types.ResolverConfig, opts ...Option) (*Resolver, error) {
	def := types.DefaultResolverConfig()
	if cfg.ArxivGate == "" {
		cfg.ArxivGate = def.ArxivGate
	}
	if cfg.WikipediaTemplate == "" {
		cfg.WikipediaTemplate = def.WikipediaTemplate
	}
	if cfg.WikisourceTemplate == "" {
		cfg.WikisourceTemplate = def.WikisourceTemplate
	}

	gate, ok := ParseDomain(cfg.ArxivGate)
	if !ok {
		return nil, fmt.Errorf("unknown arxiv gate domain %q", cfg.ArxivGate)
	}

	r := &Resolver{cfg: cfg, arxivGate: gate}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ArxivGate returns the domain that enables the arXiv rewrite.
func (r *Resolver) ArxivGate() Domain { return r.arxivGate }

// TransformArxiv applies TransformArxiv with the configured gate.
func (r *Resolver) TransformArxiv(rawURL string) string {
	return TransformArxiv(rawURL, r.arxivGate)
}

// Resolve turns rawURL into a download target. Wikipedia, Wikisource and
// SciHub URLs are checked in that order; anything else is passed through
// with a probed filename.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (types.Target, error) {
	u := EscapeQuotes(strings.TrimSpace(rawURL))
	if u == "" {
		return types.Target{}, newError(ErrUnsupportedURL, "", rawURL, nil, "empty url")
	}

	resolve := (*Resolver).resolveGeneric
	for _, rt := range routes {
		if Matches(u, rt.domain) {
			resolve = rt.resolve
			break
		}
	}

	t, err := resolve(r, ctx, u)
	if err != nil {
		return types.Target{}, err
	}
	t.SourceURL = rawURL
	return t, nil
}

func (r *Resolver) resolveWikipedia(_ context.Context, u string) (types.Target, error) {
	return r.resolveWiki(NameWikipedia, r.cfg.WikipediaTemplate, u)
}

func (r *Resolver) resolveWikisource(_ context.Context, u string) (types.Target, error) {
	return r.resolveWiki(NameWikisource, r.cfg.WikisourceTemplate, u)
}

func (r *Resolver) resolveWiki(name, template, u string) (types.Target, error) {
	requestURI, filename, ok := wikiExport(u, template)
	if !ok {
		return types.Target{}, newError(ErrExtraction, name, u, nil, "no article name in url")
	}
	return types.Target{DownloadURI: requestURI, Filename: filename, Provider: name}, nil
}

// resolveSciHub runs identifier → landing page → PDF URL → filename. Each
// step needs the previous one's result, so they run strictly in sequence.
func (r *Resolver) resolveSciHub(ctx context.Context, u string) (types.Target, error) {
	id := ExtractIdentifier(u)
	if strings.TrimSpace(id) == "" {
		return types.Target{}, newError(ErrExtraction, NameSciHub, u, nil, "no identifier after host")
	}
	if malformedIdentifier(id) {
		return types.Target{}, newError(ErrExtraction, NameSciHub, u, nil, "malformed identifier %q", id)
	}
	if r.lookup == nil || r.extractor == nil {
		return types.Target{}, newError(ErrUnsupportedURL, NameSciHub, u, nil, "no lookup client configured")
	}

	landing, err := r.lookup.LookupByIdentifier(ctx, id)
	if err != nil {
		return types.Target{}, newError(ErrLookup, NameSciHub, u, err, "identifier %s", id)
	}
	if landing == "" {
		return types.Target{}, newError(ErrLookup, NameSciHub, u, nil, "no result for identifier %s", id)
	}

	pdfURL, err := r.extractor.ExtractDownloadURL(ctx, landing)
	if err != nil {
		return types.Target{}, newError(ErrLookup, NameSciHub, u, err, "landing page %s", landing)
	}
	if pdfURL == "" {
		return types.Target{}, newError(ErrLookup, NameSciHub, u, nil, "no download link on %s", landing)
	}

	filename, err := r.probe(ctx, NameSciHub, pdfURL)
	if err != nil {
		return types.Target{}, err
	}
	return types.Target{DownloadURI: pdfURL, Filename: filename, Provider: NameSciHub}, nil
}

// malformedIdentifier reports identifiers carrying a query, a fragment or a
// trailing slash. None of those belong to a DOI.
func malformedIdentifier(id string) bool {
	return strings.ContainsAny(id, "?#") || strings.HasSuffix(id, "/")
}

func (r *Resolver) resolveGeneric(ctx context.Context, u string) (types.Target, error) {
	filename, err := r.probe(ctx, NameGeneric, u)
	if err != nil {
		return types.Target{}, err
	}
	return types.Target{DownloadURI: u, Filename: filename, Provider: NameGeneric}, nil
}

func (r *Resolver) probe(ctx context.Context, name, u string) (string, error) {
	if r.prober == nil {
		return "", newError(ErrUnsupportedURL, name, u, nil, "no prober configured")
	}
	filename, err := r.prober.ProbeFilename(ctx, u)
	if err != nil {
		return "", newError(ErrProbe, name, u, err, "")
	}
	if filename == "" || strings.ContainsAny(filename, `/\`) {
		return "", newError(ErrProbe, name, u, nil, "unusable filename %q", filename)
	}
	return filename, nil
}
