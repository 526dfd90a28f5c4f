package scheduler

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// Suggest returns declared names close to an unknown one: first names the
// input is a fuzzy subsequence of, then names within a small edit distance.
func Suggest(name string, candidates []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] && len(out) < maxSuggestions {
			seen[s] = true
			out = append(out, s)
		}
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)
	for _, r := range ranks {
		add(r.Target)
	}

	type near struct {
		name     string
		distance int
	}
	threshold := len(name) / 3
	if threshold < 2 {
		threshold = 2
	}
	var nearby []near
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c)); d <= threshold {
			nearby = append(nearby, near{name: c, distance: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].distance < nearby[j].distance })
	for _, n := range nearby {
		add(n.name)
	}

	return out
}
