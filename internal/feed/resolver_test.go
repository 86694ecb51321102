package feed_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonesrussell/thaicrawl/internal/feed"
	"github.com/jonesrussell/thaicrawl/internal/logger"
)

// stubFetcher serves sitemap documents from a map and records fetch order.
type stubFetcher struct {
	docs    map[string]string
	fetched []string
}

var errDocumentMissing = errors.New("document not found")

func (s *stubFetcher) Fetch(_ context.Context, url string, _ time.Duration) (string, error) {
	s.fetched = append(s.fetched, url)
	body, ok := s.docs[url]
	if !ok {
		return "", errDocumentMissing
	}
	return body, nil
}

// urlSet builds a url-set sitemap document for the given locations.
func urlSet(locs ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, loc := range locs {
		body += fmt.Sprintf("<url><loc>%s</loc></url>", loc)
	}
	return body + "</urlset>"
}

// sitemapIndex builds a sitemap index document for the given child sitemaps.
func sitemapIndex(locs ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, loc := range locs {
		body += fmt.Sprintf("<sitemap><loc>%s</loc></sitemap>", loc)
	}
	return body + "</sitemapindex>"
}

func TestResolveFlatURLSet(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{docs: map[string]string{
		"https://x/sitemap.xml": urlSet("https://x/a", "https://x/b"),
	}}
	resolver := feed.NewResolver(fetcher, logger.NewNoOp(), 0)

	entries := resolver.Resolve(context.Background(), "https://x/sitemap.xml")

	if got, want := len(entries), 2; got != want {
		t.Fatalf("expected %d entries, got %d", want, got)
	}
	if entries[0].Loc != "https://x/a" || entries[1].Loc != "https://x/b" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestResolveIndexRecursion(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{docs: map[string]string{
		"https://x/root.xml":  sitemapIndex("https://x/child1.xml", "https://x/child2.xml"),
		"https://x/child1.xml": urlSet("https://x/a"),
		"https://x/child2.xml": urlSet("https://x/b", "https://x/c"),
	}}
	resolver := feed.NewResolver(fetcher, logger.NewNoOp(), 0)

	entries := resolver.Resolve(context.Background(), "https://x/root.xml")

	if got, want := len(entries), 3; got != want {
		t.Fatalf("expected %d entries, got %d", want, got)
	}
}

func TestResolveCycleTerminates(t *testing.T) {
	t.Parallel()

	// A references B, B references A: each document must be fetched once and
	// the result is the union of their url sets.
	fetcher := &stubFetcher{docs: map[string]string{
		"https://x/a.xml": sitemapIndex("https://x/b.xml"),
		"https://x/b.xml": sitemapIndex("https://x/a.xml"),
	}}
	resolver := feed.NewResolver(fetcher, logger.NewNoOp(), 0)

	entries := resolver.Resolve(context.Background(), "https://x/a.xml")

	if len(entries) != 0 {
		t.Fatalf("expected no entries from pure index cycle, got %d", len(entries))
	}
	if got, want := len(fetcher.fetched), 2; got != want {
		t.Fatalf("expected %d fetches, got %d: %v", want, got, fetcher.fetched)
	}
}

func TestResolveCycleYieldsUnionOnce(t *testing.T) {
	t.Parallel()

	// Mixed documents: each carries both a reference to the other and its
	// own URL entries. The union must appear exactly once each.
	mixed := func(other string, locs ...string) string {
		body := `<?xml version="1.0" encoding="UTF-8"?><root>` +
			fmt.Sprintf("<sitemap><loc>%s</loc></sitemap>", other)
		for _, loc := range locs {
			body += fmt.Sprintf("<url><loc>%s</loc></url>", loc)
		}
		return body + "</root>"
	}

	fetcher := &stubFetcher{docs: map[string]string{
		"https://x/a.xml": mixed("https://x/b.xml", "https://x/1"),
		"https://x/b.xml": mixed("https://x/a.xml", "https://x/2"),
	}}
	resolver := feed.NewResolver(fetcher, logger.NewNoOp(), 0)

	entries := resolver.Resolve(context.Background(), "https://x/a.xml")

	if got, want := len(entries), 2; got != want {
		t.Fatalf("expected %d entries, got %d: %+v", want, got, entries)
	}
	if entries[0].Loc != "https://x/1" || entries[1].Loc != "https://x/2" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestResolveDocumentCap(t *testing.T) {
	t.Parallel()

	// Root references three children but the cap accepts only two.
	fetcher := &stubFetcher{docs: map[string]string{
		"https://x/root.xml": sitemapIndex(
			"https://x/c1.xml", "https://x/c2.xml", "https://x/c3.xml"),
		"https://x/c1.xml": urlSet("https://x/1"),
		"https://x/c2.xml": urlSet("https://x/2"),
		"https://x/c3.xml": urlSet("https://x/3"),
	}}
	resolver := feed.NewResolver(fetcher, logger.NewNoOp(), 2)

	entries := resolver.Resolve(context.Background(), "https://x/root.xml")

	if got, want := len(entries), 2; got != want {
		t.Fatalf("expected %d entries with cap 2, got %d", want, got)
	}
	// Root + two accepted children.
	if got, want := len(fetcher.fetched), 3; got != want {
		t.Fatalf("expected %d fetches, got %d: %v", want, got, fetcher.fetched)
	}
}

func TestResolveSkipsBrokenDocuments(t *testing.T) {
	t.Parallel()

	// One child is missing, one is malformed; the rest still contribute.
	fetcher := &stubFetcher{docs: map[string]string{
		"https://x/root.xml": sitemapIndex(
			"https://x/missing.xml", "https://x/broken.xml", "https://x/ok.xml"),
		"https://x/broken.xml": "<<<not xml",
		"https://x/ok.xml":     urlSet("https://x/1"),
	}}
	resolver := feed.NewResolver(fetcher, logger.NewNoOp(), 0)

	entries := resolver.Resolve(context.Background(), "https://x/root.xml")

	if got, want := len(entries), 1; got != want {
		t.Fatalf("expected %d entries, got %d", want, got)
	}
	if entries[0].Loc != "https://x/1" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}
