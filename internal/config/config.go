// Package config provides configuration management for the application.
// It merges configuration from YAML files, environment variables, and CLI
// flags through viper, then decodes into typed config structs.
package config

import (
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/jonesrussell/thaicrawl/internal/crawler"
	"github.com/jonesrussell/thaicrawl/internal/fetcher"
	"github.com/jonesrussell/thaicrawl/internal/logger"
	"github.com/jonesrussell/thaicrawl/internal/sections"
)

// Default output path templates.
const (
	DefaultCSVPath  = "data/thairath_dataset.csv"
	DefaultJSONPath = "data/thairath_dataset.json"
)

// OutputConfig holds output path templates.
type OutputConfig struct {
	// CSVPath is the CSV path template; the section name is appended before
	// the extension for each section file
	CSVPath string `yaml:"csv_path" mapstructure:"csv_path"`
	// JSONPath is the path of the whole-result JSON dump; empty disables it
	JSONPath string `yaml:"json_path" mapstructure:"json_path"`
}

// Config represents the application configuration.
type Config struct {
	// Logger holds logging configuration
	Logger logger.Config `yaml:"logger" mapstructure:"logger"`
	// Crawler holds crawl orchestration configuration
	Crawler crawler.Config `yaml:"crawler" mapstructure:"crawler"`
	// Fetcher holds fetch client configuration
	Fetcher fetcher.Config `yaml:"fetcher" mapstructure:"fetcher"`
	// Output holds output path templates
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// Load decodes the given viper instance into a Config using mapstructure
// with duration and comma-separated-list hooks, then applies defaults.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("build config decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Crawler = cfg.Crawler.WithDefaults()
	cfg.Fetcher = cfg.Fetcher.WithDefaults()
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = DefaultCSVPath
	}

	return &cfg, nil
}

// Validate checks the configuration before any network activity. A missing
// sitemap URL is the only configuration error that aborts the run.
func (c *Config) Validate() error {
	if c.Crawler.SitemapURL == "" {
		return ErrMissingSitemapURL
	}

	known := sections.DefaultRules().Names()
	for _, name := range c.Crawler.Sections {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%w: %s", ErrUnknownSection, name)
		}
	}

	return nil
}

// SetDefaults registers default configuration values on the viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", string(logger.DefaultLevel))
	v.SetDefault("logger.encoding", logger.DefaultEncoding)

	v.SetDefault("crawler.since_days", 1825)
	v.SetDefault("crawler.sections", crawler.DefaultSections)
	v.SetDefault("crawler.max_sitemap_docs", 500)

	v.SetDefault("output.csv_path", DefaultCSVPath)
	v.SetDefault("output.json_path", DefaultJSONPath)
}
