package service

import (
	"fmt"
	"hash/fnv"
	"strings"

	"go-social-insights/internal/entity"
)

// TaxonomyMatcher maps a cluster's top terms onto the configured business
// taxonomy, or synthesizes a category when nothing matches. Category order
// is declaration order, which makes tie-breaking stable across runs.
type TaxonomyMatcher struct {
	categories  []entity.TaxonomyCategory
	keywordSets []map[string]struct{}
}

// NewTaxonomyMatcher creates a matcher over the given category table.
// Category keywords are normalized through the same preprocessing as post
// text so matching is apples-to-apples.
func NewTaxonomyMatcher(categories []entity.TaxonomyCategory, pre *Preprocessor) *TaxonomyMatcher {
	sets := make([]map[string]struct{}, len(categories))
	for i, cat := range categories {
		set := make(map[string]struct{})
		for _, kw := range cat.Keywords {
			for _, tok := range pre.Tokenize(kw) {
				set[tok] = struct{}{}
			}
		}
		sets[i] = set
	}
	return &TaxonomyMatcher{
		categories:  categories,
		keywordSets: sets,
	}
}

// Match selects the category whose keyword set overlaps the cluster's top
// terms the most. Ties go to the first-declared category. A best score of
// zero yields a synthesized category instead of a forced poor match: a
// cluster with no taxonomy affinity must stay visible.
func (m *TaxonomyMatcher) Match(topTerms []string) (taxonomyID, label, description string) {
	bestIdx := -1
	bestScore := 0

	for i := range m.categories {
		score := 0
		for _, term := range topTerms {
			if _, ok := m.keywordSets[i][strings.ToLower(term)]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return m.synthesize(topTerms)
	}

	cat := m.categories[bestIdx]
	return cat.ID, cat.Label, cat.Description
}

// synthesize builds a category from the cluster's own leading terms. The id
// is content-addressed so identical input produces an identical id.
func (m *TaxonomyMatcher) synthesize(topTerms []string) (taxonomyID, label, description string) {
	n := 3
	if len(topTerms) < n {
		n = len(topTerms)
	}
	lead := topTerms[:n]

	if len(lead) == 0 {
		return "custom_empty", "Uncategorized", "Posts without distinguishing terms"
	}

	h := fnv.New32a()
	h.Write([]byte(strings.Join(lead, "_")))

	titled := make([]string, len(lead))
	for i, term := range lead {
		titled[i] = capitalize(term)
	}

	return fmt.Sprintf("custom_%08x", h.Sum32()),
		strings.Join(titled, " / "),
		fmt.Sprintf("Emerging topic around %s", strings.Join(lead, ", "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
