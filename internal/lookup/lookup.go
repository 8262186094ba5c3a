package lookup

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

// MinSimilarity is the lowest similarity ratio Suggest will accept.
const MinSimilarity = 0.4

// Filter keeps the schools whose name, town or province contains query,
// ignoring case. An empty query keeps everything.
func Filter(schools []models.School, query string) []models.School {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return schools
	}
	var out []models.School
	for _, s := range schools {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Town), q) ||
			strings.Contains(strings.ToLower(s.Province), q) {
			out = append(out, s)
		}
	}
	return out
}

// Suggest finds the school the user most likely meant:
//  1. an exact name match, ignoring case
//  2. the first school whose normalised name contains the query or is
//     contained in it
//  3. the most similar name, if its similarity is at least MinSimilarity
//
// It returns nil when nothing qualifies.
func Suggest(schools []models.School, query string) *models.School {
	q := strings.TrimSpace(query)
	if q == "" || len(schools) == 0 {
		return nil
	}

	// 1. --- Exact ---
	for i := range schools {
		if strings.EqualFold(strings.TrimSpace(schools[i].Name), q) {
			return &schools[i]
		}
	}

	// 2. --- Partial ---
	nq := normalise(q)
	if nq != "" {
		for i := range schools {
			name := normalise(schools[i].Name)
			if name == "" {
				continue
			}
			if strings.Contains(name, nq) || strings.Contains(nq, name) {
				return &schools[i]
			}
		}
	}

	// 3. --- Similarity ---
	var best *models.School
	bestScore := 0.0
	for i := range schools {
		score := Similarity(strings.ToLower(schools[i].Name), strings.ToLower(q))
		if score > bestScore {
			best, bestScore = &schools[i], score
		}
	}
	if bestScore < MinSimilarity {
		return nil
	}
	return best
}

// normalise reduces a name to lowercase ASCII words joined by single spaces,
// with punctuation dropped.
func normalise(s string) string {
	return strings.ReplaceAll(slug.Make(s), "-", " ")
}

// Similarity is 1 minus the edit distance over the longer length: 1 for
// identical strings, 0 for strings with nothing in common.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
