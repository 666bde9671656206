package session

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"nodeforest/pkg/models"
	"nodeforest/pkg/tree"
)

// MaxFindDistance is the largest edit distance between the query and a word
// of a node's content that still counts as a match.
const MaxFindDistance = 2

// Match is a node found by Find. Distance is zero for substring matches.
type Match struct {
	Row      models.Row
	Distance int
}

// Find searches the content and attribute values of every node, collapsed
// subtrees included. Substring matches rank first, then close spellings;
// ties keep forest order.
func (s *Session) Find(query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	matches := make([]Match, 0)
	for _, row := range tree.FlattenAll(s.Nodes()) {
		if d, ok := distance(row.Node, q); ok {
			matches = append(matches, Match{Row: row, Distance: d})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return a.Distance - b.Distance
	})
	return matches
}

func distance(n *models.Node, q string) (int, bool) {
	texts := make([]string, 0, len(n.Extra)+1)
	texts = append(texts, n.Content)
	for _, v := range n.Extra {
		texts = append(texts, v)
	}

	best := MaxFindDistance + 1
	for _, text := range texts {
		text = strings.ToLower(text)
		if strings.Contains(text, q) {
			return 0, true
		}
		for _, word := range strings.Fields(text) {
			if d := levenshtein.ComputeDistance(word, q); d < best {
				best = d
			}
		}
	}
	return best, best <= MaxFindDistance
}
