// Package crawler orchestrates one crawl: it resolves the sitemap hierarchy,
// filters entries by section and recency, fetches each candidate
// sequentially, extracts article fields, and accumulates per-section records.
package crawler

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/thaicrawl/internal/domain"
	"github.com/jonesrussell/thaicrawl/internal/extractor"
	"github.com/jonesrussell/thaicrawl/internal/feed"
	"github.com/jonesrussell/thaicrawl/internal/logger"
	"github.com/jonesrussell/thaicrawl/internal/sections"
)

// hoursPerDay converts the recency window from days to a duration.
const hoursPerDay = 24

// SitemapResolver expands a root sitemap into URL entries.
type SitemapResolver interface {
	Resolve(ctx context.Context, rootURL string) []feed.Entry
}

// ArticleFetcher fetches an article page with the retry policy applied.
type ArticleFetcher interface {
	FetchWithRetry(ctx context.Context, url string) (string, error)
}

// ArticleExtractor parses article HTML into a normalized fragment.
type ArticleExtractor interface {
	Extract(html, sourceURL string) extractor.Extracted
}

// candidate is a sitemap entry that passed section and recency filtering and
// is queued for fetching.
type candidate struct {
	loc     string
	section string
}

// Crawler runs the fetch-extract-record pipeline.
type Crawler struct {
	resolver  SitemapResolver
	fetcher   ArticleFetcher
	extractor ArticleExtractor
	rules     sections.Ruleset
	log       logger.Interface
	cfg       Config
}

// New creates a crawl orchestrator.
func New(
	resolver SitemapResolver,
	articleFetcher ArticleFetcher,
	articleExtractor ArticleExtractor,
	rules sections.Ruleset,
	log logger.Interface,
	cfg Config,
) *Crawler {
	return &Crawler{
		resolver:  resolver,
		fetcher:   articleFetcher,
		extractor: articleExtractor,
		rules:     rules,
		log:       log.WithComponent("crawler"),
		cfg:       cfg.WithDefaults(),
	}
}

// Run executes one crawl to completion. Candidates are processed strictly
// sequentially; a fetch failure is logged and counted but never aborts the
// run. Context cancellation is honored at candidate boundaries and returns
// the partial result along with the context error.
func (c *Crawler) Run(ctx context.Context) (*domain.Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := c.log.WithRunID(runID)

	log.Info("resolving sitemap", "url", c.cfg.SitemapURL)
	entries := c.resolver.Resolve(ctx, c.cfg.SitemapURL)

	candidates := c.filterCandidates(entries)
	log.Info("candidates selected",
		"entries", len(entries),
		"candidates", len(candidates),
		"sections", c.cfg.Sections,
	)

	result := domain.NewResult(runID, c.cfg.Sections)

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			log.Warn("crawl cancelled", "processed", result.Total(), "remaining", len(candidates)-i)
			return result, err
		}

		c.processCandidate(ctx, &candidates[i], result, log)
	}

	log.WithDuration(time.Since(start)).Info("crawl finished", "ok", result.OK, "failed", result.Failed)
	return result, nil
}

// filterCandidates classifies entries into requested sections, deduplicates
// by location (first occurrence wins), and drops entries whose known lastmod
// falls outside the recency window. Entries without a lastmod are always
// kept. A positive Limit caps the surviving candidates.
func (c *Crawler) filterCandidates(entries []feed.Entry) []candidate {
	cutoff := time.Now().Add(-time.Duration(c.cfg.SinceDays) * hoursPerDay * time.Hour)
	seen := make(map[string]struct{}, len(entries))

	var candidates []candidate

	for i := range entries {
		entry := &entries[i]

		section, ok := c.rules.Classify(entry.Loc, c.cfg.Sections)
		if !ok {
			continue
		}

		if _, dup := seen[entry.Loc]; dup {
			continue
		}
		seen[entry.Loc] = struct{}{}

		if entry.LastMod != nil && entry.LastMod.Before(cutoff) {
			continue
		}

		candidates = append(candidates, candidate{loc: entry.Loc, section: section})

		if c.cfg.Limit > 0 && len(candidates) >= c.cfg.Limit {
			break
		}
	}

	return candidates
}

// processCandidate runs one fetch-extract-record cycle.
func (c *Crawler) processCandidate(
	ctx context.Context,
	cand *candidate,
	result *domain.Result,
	log logger.Interface,
) {
	log = log.WithURL(cand.loc)

	html, err := c.fetcher.FetchWithRetry(ctx, cand.loc)
	if err != nil {
		log.WithError(err).Error("article fetch failed")
		result.Failed++
		return
	}

	meta := c.extractor.Extract(html, cand.loc)

	record := domain.ArticleRecord{
		Agency:       domain.Agency,
		Section:      cand.section,
		ID:           recordID(cand.loc),
		PublishedISO: meta.PublishedISO,
		Headline:     meta.Headline,
		Summary:      meta.Summary,
		Content:      meta.Content,
		URL:          cand.loc,
	}

	result.PerSection[cand.section] = append(result.PerSection[cand.section], record)
	result.OK++
	log.Debug("article saved", "section", cand.section, "id", record.ID)

	// Politeness throttle between successful fetches.
	time.Sleep(c.cfg.PolitenessDelay)
}

// recordID derives a record ID from the URL's numeric path segment, falling
// back to the current Unix timestamp when the URL has none. The fallback is
// not stable across re-runs.
func recordID(loc string) string {
	if id := ExtractIDFromURL(loc); id != "" {
		return id
	}
	return strconv.FormatInt(time.Now().Unix(), 10)
}
