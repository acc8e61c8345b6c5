// Package match ranks names by similarity to offer "did you mean"
// suggestions for misspelled transformer and object names.
package match

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// MinSimilarity is the lowest Similarity a candidate needs to be suggested.
const MinSimilarity = 0.5

// Suggest returns up to limit candidates resembling name, most similar
// first. Ties keep candidate order.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if s := Similarity(name, c); s >= MinSimilarity && c != name {
			ranked = append(ranked, scored{c, s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}

// Similarity is 1 minus the edit distance of the folded identifiers divided
// by the longer length: 1 for equal names, 0 for unrelated ones.
func Similarity(a, b string) float64 {
	a, b = Fold(a), Fold(b)

	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}

// Fold lowercases an identifier and drops separators so that
// "value_transformer", "ValueTransformer" and "value-transformer" compare equal.
func Fold(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// Distance is the Levenshtein edit distance between a and b, in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			up := row[i]
			row[i] = min(row[i]+1, row[i-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(ra)]
}
