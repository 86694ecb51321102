// Package config provides configuration management for the application.
package config

import "errors"

// Configuration errors. These are fatal: they abort the run before any
// network activity.
var (
	// ErrMissingSitemapURL is returned when the required sitemap URL is not configured.
	ErrMissingSitemapURL = errors.New("sitemap URL is required (set --sitemap, THAICRAWL_SITEMAP_URL, or crawler.sitemap_url)")
	// ErrUnknownSection is returned when a requested section has no rule.
	ErrUnknownSection = errors.New("unknown section name")
)
