package organization

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortProjects returns projects ordered by display name using tag's collation
// rules, with slug as the tie breaker. The input slice is not modified.
func SortProjects(projects []Project, tag language.Tag) []Project {
	out := append([]Project(nil), projects...)
	if len(out) < 2 {
		return out
	}
	// Collators are not safe for concurrent use.
	names := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := names.CompareString(out[i].DisplayName(), out[j].DisplayName()); cmp != 0 {
			return cmp < 0
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
