// Package feed resolves a sitemap hierarchy into a flat list of page URLs.
// It parses standard sitemap XML and sitemap index documents, following
// child sitemaps iteratively with cycle protection and a document cap.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// dateOnlyFormat is the date-only layout for sitemap lastmod values (e.g. "2024-01-15").
const dateOnlyFormat = "2006-01-02"

// Entry represents a single URL entry extracted from a sitemap.
type Entry struct {
	Loc     string     `json:"loc"`
	LastMod *time.Time `json:"lastmod,omitempty"`
}

// Document is a parsed sitemap document: a sitemap index contributes child
// sitemap locations, a URL set contributes entries. A document may in
// principle carry both; both lists are preserved.
type Document struct {
	ChildSitemaps []string
	Entries       []Entry
}

// IsIndex reports whether the document lists child sitemaps.
func (d *Document) IsIndex() bool {
	return len(d.ChildSitemaps) > 0
}

// xmlDocument matches either a <urlset> or a <sitemapindex> root. No XMLName
// is declared so the root element name and any declared namespace are
// accepted; child elements are matched by local name.
type xmlDocument struct {
	Sitemaps []xmlSitemap `xml:"sitemap"`
	URLs     []xmlURL     `xml:"url"`
}

// xmlSitemap is a single <sitemap> entry inside a <sitemapindex>.
type xmlSitemap struct {
	Loc string `xml:"loc"`
}

// xmlURL is a single <url> entry inside a <urlset>.
type xmlURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// ParseDocument parses sitemap XML of either kind and returns the child
// sitemap locations and URL entries it contains, in document order.
func ParseDocument(body string) (*Document, error) {
	var raw xmlDocument
	if err := xml.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("parse sitemap: %w", err)
	}

	doc := &Document{}

	for _, s := range raw.Sitemaps {
		loc := strings.TrimSpace(s.Loc)
		if loc != "" {
			doc.ChildSitemaps = append(doc.ChildSitemaps, loc)
		}
	}

	for i := range raw.URLs {
		entry := convertXMLURL(&raw.URLs[i])
		if entry.Loc != "" {
			doc.Entries = append(doc.Entries, entry)
		}
	}

	return doc, nil
}

// convertXMLURL converts a raw XML URL entry into an Entry, parsing the
// lastmod date if present. A malformed lastmod yields a nil LastMod.
func convertXMLURL(entry *xmlURL) Entry {
	e := Entry{Loc: strings.TrimSpace(entry.Loc)}

	if entry.LastMod != "" {
		if t, err := parseLastMod(entry.LastMod); err == nil {
			e.LastMod = &t
		}
	}

	return e
}

// parseLastMod attempts to parse a sitemap lastmod value. It tries RFC 3339
// first (e.g. "2024-01-15T10:30:00Z"), then falls back to the date-only
// format (e.g. "2024-01-15").
func parseLastMod(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)

	t, err := time.Parse(time.RFC3339, trimmed)
	if err == nil {
		return t, nil
	}

	t, dateErr := time.Parse(dateOnlyFormat, trimmed)
	if dateErr == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("parse lastmod %q: %w", trimmed, dateErr)
}
