package crawler

import "strings"

// ExtractIDFromURL returns the last purely numeric path segment of the URL,
// or an empty string when the URL has none. Query and fragment parts are
// ignored.
func ExtractIDFromURL(url string) string {
	path := url
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if isNumeric(segments[i]) {
			return segments[i]
		}
	}

	return ""
}

// isNumeric reports whether s is non-empty and consists only of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
