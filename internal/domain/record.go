// Package domain provides domain models used across the application.
package domain

import (
	"strings"
)

// Agency is the constant agency identifier stamped on every record.
const Agency = "thairath"

// ArticleRecord represents one extracted article, immutable once built.
type ArticleRecord struct {
	// Agency is the constant news agency identifier
	Agency string `json:"agency"`
	// Section is the topical section the article was classified into
	Section string `json:"section"`
	// ID is derived from the last numeric path segment of the URL
	ID string `json:"id"`
	// PublishedISO is the article's publication time in ISO-8601, or empty
	PublishedISO string `json:"published_iso"`
	// Headline is the article headline
	Headline string `json:"headline"`
	// Summary is the article summary or meta description
	Summary string `json:"summary"`
	// Content is the article body text, paragraphs joined by newlines
	Content string `json:"content"`
	// URL is the article's source URL
	URL string `json:"url"`
}

// CSVHeader returns the fixed CSV column order for article records.
func CSVHeader() []string {
	return []string{"agency", "section", "id", "published_iso", "headline", "summary", "content", "url"}
}

// CSVRow returns the record's fields in CSVHeader order, sanitized for
// serialization: embedded newlines collapsed to spaces and whitespace trimmed.
func (r *ArticleRecord) CSVRow() []string {
	return []string{
		sanitizeField(r.Agency),
		sanitizeField(r.Section),
		sanitizeField(r.ID),
		sanitizeField(r.PublishedISO),
		sanitizeField(r.Headline),
		sanitizeField(r.Summary),
		sanitizeField(r.Content),
		sanitizeField(r.URL),
	}
}

// sanitizeField collapses embedded newlines to spaces and trims the result.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
