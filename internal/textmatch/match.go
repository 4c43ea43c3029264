// Package textmatch scores approximate string matches for the name-search
// fallback. Scores run 0–100 and are computed per rune so Hangul compares
// correctly.
package textmatch

import (
	"math"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// AcceptThreshold is the minimum score a fuzzy match must reach before the
// search flows treat it as a hit. A one-character typo in a three-character
// Korean name must stay above it.
const AcceptThreshold = 70

// Score returns the similarity of two strings on a 0–100 scale,
// case-insensitively.
func Score(a, b string) int {
	sim := strutil.Similarity(strings.ToLower(a), strings.ToLower(b), metrics.NewJaroWinkler())
	return int(math.Round(sim * 100))
}

// BestMatch returns the single highest-scoring candidate for the query.
// Ties are broken by candidate order, first seen wins. ok is false when
// candidates is empty.
func BestMatch(query string, candidates []string) (match string, score int, ok bool) {
	if len(candidates) == 0 {
		return "", 0, false
	}
	best := -1
	for _, c := range candidates {
		if s := Score(query, c); s > best {
			best = s
			match = c
		}
	}
	return match, best, true
}
