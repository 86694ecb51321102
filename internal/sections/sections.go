// Package sections classifies article URLs into topical sections using
// ordered prefix rules with optional sub-filters.
package sections

import "strings"

// Rule maps a URL path prefix to a section name. A rule matches a URL when
// PathPrefix is a substring of the URL and SubFilter, if set, accepts it.
// PathPrefix and SubFilter are kept as separate concerns so a future rule
// can carry a prefix broader than its filter.
type Rule struct {
	// Name is the section name
	Name string
	// PathPrefix is the URL path substring that selects this section
	PathPrefix string
	// SubFilter optionally narrows the match within the prefix
	SubFilter func(url string) bool
}

// Matches reports whether the rule accepts the given URL.
func (r *Rule) Matches(url string) bool {
	if !strings.Contains(url, r.PathPrefix) {
		return false
	}
	if r.SubFilter != nil && !r.SubFilter(url) {
		return false
	}
	return true
}

// Ruleset is an immutable ordered list of section rules.
type Ruleset []Rule

// Classify returns the name of the first requested section whose rule
// matches the URL. Requested sections are tried in caller order, so the
// first match wins when prefixes overlap. The second return value is false
// when no requested section matches.
func (rs Ruleset) Classify(url string, requested []string) (string, bool) {
	for _, name := range requested {
		rule, ok := rs.find(name)
		if !ok {
			continue
		}
		if rule.Matches(url) {
			return name, true
		}
	}
	return "", false
}

// Names returns the rule names in definition order.
func (rs Ruleset) Names() []string {
	names := make([]string, 0, len(rs))
	for i := range rs {
		names = append(names, rs[i].Name)
	}
	return names
}

// find returns the rule with the given name.
func (rs Ruleset) find(name string) (*Rule, bool) {
	for i := range rs {
		if rs[i].Name == name {
			return &rs[i], true
		}
	}
	return nil, false
}

// pathContains builds a sub-filter that requires the URL to contain the
// given path fragment.
func pathContains(fragment string) func(string) bool {
	return func(url string) bool {
		return strings.Contains(url, fragment)
	}
}

// DefaultRules returns the built-in section rules for the Thairath site.
// The filter and prefix coincide for the current rules except economics,
// where the filter is narrower than the prefix.
func DefaultRules() Ruleset {
	return Ruleset{
		{
			Name:       "economics",
			PathPrefix: "/money/economics",
			SubFilter:  pathContains("/money/economics/thai_economics/"),
		},
		{
			Name:       "investment",
			PathPrefix: "/money/investment",
			SubFilter:  pathContains("/money/investment/"),
		},
		{
			Name:       "tech_innovation",
			PathPrefix: "/money/tech_innovation",
			SubFilter:  pathContains("/money/tech_innovation/"),
		},
		{
			Name:       "politic",
			PathPrefix: "/news/politic",
			SubFilter:  pathContains("/news/politic/"),
		},
		{
			Name:       "personal_finance",
			PathPrefix: "/money/personal_finance",
			SubFilter:  pathContains("/money/personal_finance/"),
		},
		{
			Name:       "business_marketing",
			PathPrefix: "/money/business_marketing",
			SubFilter:  pathContains("/money/business_marketing/"),
		},
	}
}
