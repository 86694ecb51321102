// Package extractor parses fetched article HTML into a normalized fragment
// using goquery. Page structure across articles is inconsistent, so every
// field is resolved through an ordered fallback chain where the first match
// wins; extraction never fails and missing fields default to empty strings.
package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// minParagraphLength is the minimum trimmed length, in characters, for a
// paragraph to count as article content. Thai text is multi-byte in UTF-8,
// so the floor counts runes rather than bytes.
const minParagraphLength = 2

// contentSelectors is the ordered fallback chain of content containers. The
// first selector that yields at least one qualifying paragraph wins.
var contentSelectors = []string{"main", "article", ".article-content", ".content-article"}

// Extracted is the article fragment produced from one HTML page.
type Extracted struct {
	// Headline is the article headline, or empty
	Headline string
	// Summary is the meta description, or empty
	Summary string
	// Content is the paragraph text joined by newlines, or empty
	Content string
	// PublishedISO is the normalized publication timestamp, or empty
	PublishedISO string
}

// Extractor parses article pages.
type Extractor struct{}

// New creates a new article extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses HTML and extracts the article fragment. It never fails:
// unparseable input or missing tags yield empty fields.
func (e *Extractor) Extract(html, sourceURL string) Extracted {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Extracted{}
	}

	return Extracted{
		Headline:     extractHeadline(doc),
		Summary:      extractSummary(doc),
		Content:      extractContent(doc),
		PublishedISO: extractPublished(doc),
	}
}

// extractHeadline prefers the og:title meta content, falling back to the
// first level-1 heading's trimmed text.
func extractHeadline(doc *goquery.Document) string {
	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		return ogTitle
	}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return strings.TrimSpace(h1.Text())
	}

	return ""
}

// extractSummary reads the og:description meta content, falling back to the
// generic description meta tag.
func extractSummary(doc *goquery.Document) string {
	if desc, exists := doc.Find("meta[property='og:description']").Attr("content"); exists {
		return strings.TrimSpace(desc)
	}

	if desc, exists := doc.Find("meta[name='description']").Attr("content"); exists {
		return strings.TrimSpace(desc)
	}

	return ""
}

// extractContent walks the container selector chain and collects paragraph
// texts longer than minParagraphLength from the first container that has
// any, joined with newlines.
func extractContent(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}

		paragraphs := collectParagraphs(container)
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n")
		}
	}

	return ""
}

// collectParagraphs returns the trimmed texts of the container's paragraphs
// that are long enough to qualify as content.
func collectParagraphs(container *goquery.Selection) []string {
	var paragraphs []string

	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(text) > minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	})

	return paragraphs
}

// extractPublished reads the article:published_time meta content and
// normalizes it to ISO-8601. Parse failures yield an empty string.
func extractPublished(doc *goquery.Document) string {
	raw, exists := doc.Find("meta[property='article:published_time']").Attr("content")
	if !exists {
		return ""
	}

	return NormalizeDate(raw)
}
