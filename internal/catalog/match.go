package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match is a scored search hit against the enumerated collection.
type Match struct {
	Video RemoteVideo `json:"video"`
	Score float64     `json:"score"` // Jaro-Winkler similarity (0.0-1.0)
}

// matchThreshold is the minimum similarity for a hit to be reported.
const matchThreshold = 0.70

// Find ranks collection entries against a free-text query using
// Jaro-Winkler similarity, which favors prefix matches (good for titles).
// An exact substring match of the normalized query scores at least 0.95.
// At most limit matches are returned, best first; limit <= 0 means all.
func (r *Result) Find(query string, limit int) []Match {
	normalized := normalizeTitle(query)
	if normalized == "" {
		return nil
	}

	var matches []Match
	for _, v := range r.Videos {
		candidate := normalizeTitle(v.Title)
		score := float64(edlib.JaroWinklerSimilarity(normalized, candidate))
		if strings.Contains(candidate, normalized) && score < 0.95 {
			score = 0.95
		}
		if score < matchThreshold {
			continue
		}
		matches = append(matches, Match{Video: v, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// normalizeTitle lowercases, strips accents and punctuation, and collapses
// whitespace so that comparison ignores cosmetic differences.
func normalizeTitle(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
