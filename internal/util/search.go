package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a milestone filter.
type SearchQuery struct {
	Years   []string
	Markers []string
	Deltas  []string
	Text    []string
}

var (
	yearRegex   = regexp.MustCompile(`year:(\d{4})`)
	markerRegex = regexp.MustCompile(`marker:(\w+)`)
	deltaRegex  = regexp.MustCompile(`delta:(\S+)`)
)

// ParseSearchQuery breaks down a raw query string into its structured components.
func ParseSearchQuery(query string) SearchQuery {
	sq := SearchQuery{}

	extract := func(re *regexp.Regexp) []string {
		matches := re.FindAllStringSubmatch(query, -1)
		if matches == nil {
			return nil
		}
		var values []string
		for _, match := range matches {
			if len(match) > 1 {
				values = append(values, strings.ToLower(match[1]))
			}
		}
		query = re.ReplaceAllString(query, "")
		return values
	}

	sq.Years = extract(yearRegex)
	sq.Markers = extract(markerRegex)
	sq.Deltas = extract(deltaRegex)
	for _, w := range strings.Fields(query) {
		sq.Text = append(sq.Text, strings.ToLower(w))
	}

	return sq
}

// IsEmpty reports whether the query matches everything.
func (q SearchQuery) IsEmpty() bool {
	return len(q.Years) == 0 && len(q.Markers) == 0 && len(q.Deltas) == 0 && len(q.Text) == 0
}
