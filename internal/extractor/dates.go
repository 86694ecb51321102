package extractor

import (
	"strings"
	"time"
)

// ISO-8601 layouts tried when normalizing publication timestamps. Go's
// parser accepts fractional seconds against these layouts even though none
// declares them.
const (
	isoOffsetLayout = "2006-01-02T15:04:05-07:00"
	isoNaiveLayout  = "2006-01-02T15:04:05"
	isoDateLayout   = "2006-01-02"

	isoOffsetFracLayout = "2006-01-02T15:04:05.000000-07:00"
	isoNaiveFracLayout  = "2006-01-02T15:04:05.000000"
)

// NormalizeDate parses an ISO-8601 timestamp, accepting a literal Z suffix
// as the UTC offset, and re-renders it in canonical ISO-8601 form with an
// explicit "+00:00"-style offset. Timestamps without a zone stay zoneless.
// Any parse failure yields an empty string.
func NormalizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// Python's fromisoformat idiom: a literal Z becomes the UTC offset.
	normalized := strings.ReplaceAll(trimmed, "Z", "+00:00")

	if t, err := time.Parse(isoOffsetLayout, normalized); err == nil {
		return formatISO(t, isoOffsetLayout, isoOffsetFracLayout)
	}

	if t, err := time.Parse(isoNaiveLayout, normalized); err == nil {
		return formatISO(t, isoNaiveLayout, isoNaiveFracLayout)
	}

	if t, err := time.Parse(isoDateLayout, normalized); err == nil {
		return t.Format(isoNaiveLayout)
	}

	return ""
}

// formatISO renders t with the plain layout, switching to the fractional
// layout when sub-second precision is present.
func formatISO(t time.Time, plain, frac string) string {
	if t.Nanosecond() != 0 {
		return t.Format(frac)
	}
	return t.Format(plain)
}
