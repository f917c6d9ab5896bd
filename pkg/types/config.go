// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every component that makes
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paimon/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LookupBackend selects the external service used to turn an identifier
// into a landing page.
type LookupBackend string

const (
	LookupSciHub   LookupBackend = "scihub"
	LookupOpenAlex LookupBackend = "openalex"
)

// ResolverConfig holds settings for the provider resolution engine.
type ResolverConfig struct {
	// ArxivGate is the domain pattern that enables the /abs/ to /pdf/
	// rewrite. It defaults to the SciHub pattern.
	ArxivGate string `json:"arxiv_gate" yaml:"arxiv_gate" mapstructure:"arxiv_gate"`

	// WikipediaTemplate is the PDF export endpoint for the "en" locale.
	// The article name is appended to it.
	WikipediaTemplate string `json:"wikipedia_template" yaml:"wikipedia_template" mapstructure:"wikipedia_template"`

	// WikisourceTemplate is the Wikisource counterpart of WikipediaTemplate.
	WikisourceTemplate string `json:"wikisource_template" yaml:"wikisource_template" mapstructure:"wikisource_template"`

	// LookupBackend selects scihub or openalex.
	LookupBackend LookupBackend `json:"lookup_backend" yaml:"lookup_backend" mapstructure:"lookup_backend"`

	// SciHubMirror is the base URL of the SciHub mirror queried by identifier.
	SciHubMirror string `json:"scihub_mirror" yaml:"scihub_mirror" mapstructure:"scihub_mirror"`

	// OpenAlexBase is the OpenAlex works endpoint.
	OpenAlexBase string `json:"openalex_base" yaml:"openalex_base" mapstructure:"openalex_base"`

	// OpenAlexMailto is sent as the mailto parameter for the OpenAlex polite pool.
	OpenAlexMailto string `json:"openalex_mailto,omitempty" yaml:"openalex_mailto,omitempty" mapstructure:"openalex_mailto"`
}

// FetchConfig holds settings for the download stage.
type FetchConfig struct {
	// OutputDir is the directory resolved files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Concurrency bounds the number of resolutions and downloads in flight.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// Manifest enables writing manifest.yaml next to the downloads.
	Manifest bool `json:"manifest" yaml:"manifest" mapstructure:"manifest"`
}

// PipelineConfig groups all configuration sections.
type PipelineConfig struct {
	HTTP     HTTPConfig     `json:"http" yaml:"http" mapstructure:"http"`
	Resolver ResolverConfig `json:"resolver" yaml:"resolver" mapstructure:"resolver"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
}

// Default values for PipelineConfig.
const (
	DefaultTimeout            = 60 * time.Second
	DefaultUserAgent          = "paimon/0.1"
	DefaultArxivGate          = "sci-hub.se"
	DefaultWikipediaTemplate  = "https://en.wikipedia.org/api/rest_v1/page/pdf/"
	DefaultWikisourceTemplate = "https://en.wikisource.org/api/rest_v1/page/pdf/"
	DefaultSciHubMirror       = "https://sci-hub.se"
	DefaultOpenAlexBase       = "https://api.openalex.org/works/"
	DefaultOutputDir          = "downloads"
	DefaultConcurrency        = 4
)

// DefaultPipelineConfig returns a configuration with every field set to
// its default.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		HTTP: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Resolver: DefaultResolverConfig(),
		Fetch: FetchConfig{
			OutputDir:   DefaultOutputDir,
			Concurrency: DefaultConcurrency,
			Manifest:    true,
		},
	}
}

// DefaultResolverConfig returns the resolver defaults.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		ArxivGate:          DefaultArxivGate,
		WikipediaTemplate:  DefaultWikipediaTemplate,
		WikisourceTemplate: DefaultWikisourceTemplate,
		LookupBackend:      LookupSciHub,
		SciHubMirror:       DefaultSciHubMirror,
		OpenAlexBase:       DefaultOpenAlexBase,
	}
}
