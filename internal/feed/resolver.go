package feed

import (
	"context"
	"time"

	"github.com/jonesrussell/thaicrawl/internal/logger"
)

// Default resolver limits.
const (
	// DefaultMaxDocs caps the number of distinct child sitemap documents
	// accepted for traversal in one resolution.
	DefaultMaxDocs = 500

	// documentFetchTimeout bounds the fetch of a single sitemap document.
	documentFetchTimeout = 10 * time.Second
)

// PageFetcher fetches a URL's body within a timeout.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// Resolver expands a sitemap index into a flat list of URL entries.
type Resolver struct {
	fetcher PageFetcher
	log     logger.Interface
	maxDocs int
}

// NewResolver creates a resolver. maxDocs caps the child sitemap documents
// accepted during traversal; values <= 0 use DefaultMaxDocs.
func NewResolver(fetcher PageFetcher, log logger.Interface, maxDocs int) *Resolver {
	if maxDocs <= 0 {
		maxDocs = DefaultMaxDocs
	}
	return &Resolver{
		fetcher: fetcher,
		log:     log.WithComponent("sitemap"),
		maxDocs: maxDocs,
	}
}

// Resolve walks the sitemap hierarchy starting at rootURL and returns every
// URL entry discovered, in discovery order and not deduplicated. Traversal
// uses an explicit worklist with a visited set: no sitemap URL is fetched
// twice, so cycles terminate. The root document does not count toward the
// document cap; once the cap is reached, newly discovered child sitemaps are
// dropped while already queued ones still complete. A fetch or parse failure
// for a single document contributes zero entries and never aborts the walk.
func (r *Resolver) Resolve(ctx context.Context, rootURL string) []Entry {
	queue := []string{rootURL}
	visited := map[string]struct{}{rootURL: {}}
	accepted := 0

	var entries []Entry

	for len(queue) > 0 {
		docURL := queue[0]
		queue = queue[1:]

		doc, err := r.loadDocument(ctx, docURL)
		if err != nil {
			r.log.Warn("sitemap document skipped", "url", docURL, "error", err)
			continue
		}

		for _, loc := range doc.ChildSitemaps {
			if _, seen := visited[loc]; seen {
				continue
			}
			if accepted >= r.maxDocs {
				continue
			}
			visited[loc] = struct{}{}
			accepted++
			queue = append(queue, loc)
		}

		entries = append(entries, doc.Entries...)
	}

	return entries
}

// loadDocument fetches and parses one sitemap document.
func (r *Resolver) loadDocument(ctx context.Context, docURL string) (*Document, error) {
	body, err := r.fetcher.Fetch(ctx, docURL, documentFetchTimeout)
	if err != nil {
		return nil, err
	}

	return ParseDocument(body)
}
