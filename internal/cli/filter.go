package cli

import (
	"strconv"
	"strings"

	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/util"
)

// matchesQuery applies a list filter. Terms of the same kind are OR-ed,
// different kinds are AND-ed; free text must all appear in the name.
func matchesQuery(m models.Milestone, q util.SearchQuery) bool {
	if len(q.Years) > 0 {
		year := strconv.Itoa(m.Date.Year)
		if !m.Date.HasYear() || !containsString(q.Years, year) {
			return false
		}
	}
	if len(q.Markers) > 0 && !anyContains(strings.ToLower(m.Marker.Label), q.Markers) {
		return false
	}
	if len(q.Deltas) > 0 && !containsString(q.Deltas, strings.ToLower(m.WeeksDelta)) {
		return false
	}
	name := strings.ToLower(m.Name)
	for _, w := range q.Text {
		if !strings.Contains(name, w) {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func anyContains(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
