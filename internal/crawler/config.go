package crawler

import "time"

// Default configuration values.
const (
	defaultSinceDays       = 1825
	defaultPolitenessDelay = 50 * time.Millisecond
)

// DefaultSections is the default set of requested sections.
var DefaultSections = []string{"economics", "investment", "tech_innovation", "politic"}

// Config holds crawl orchestration configuration.
type Config struct {
	// SitemapURL is the root sitemap to resolve (required)
	SitemapURL string `yaml:"sitemap_url" mapstructure:"sitemap_url"`
	// Sections is the ordered list of requested section names
	Sections []string `yaml:"sections" mapstructure:"sections"`
	// SinceDays is the recency window: entries with a known lastmod older
	// than now minus SinceDays are skipped before fetching
	SinceDays int `yaml:"since_days" mapstructure:"since_days"`
	// Limit caps the number of candidates processed; zero means no limit
	Limit int `yaml:"limit" mapstructure:"limit"`
	// MaxSitemapDocs caps child sitemap documents visited during resolution
	MaxSitemapDocs int `yaml:"max_sitemap_docs" mapstructure:"max_sitemap_docs"`
	// PolitenessDelay is the pause after each successful fetch
	PolitenessDelay time.Duration `yaml:"politeness_delay" mapstructure:"politeness_delay"`
}

// WithDefaults returns a copy of the config with default values applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if len(c.Sections) == 0 {
		c.Sections = DefaultSections
	}
	if c.SinceDays <= 0 {
		c.SinceDays = defaultSinceDays
	}
	if c.PolitenessDelay <= 0 {
		c.PolitenessDelay = defaultPolitenessDelay
	}
	return c
}
