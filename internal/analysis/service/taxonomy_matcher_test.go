package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-social-insights/internal/entity"
)

func testTaxonomy() []entity.TaxonomyCategory {
	return []entity.TaxonomyCategory{
		{
			ID:       "ev_adoption",
			Label:    "EV Adoption",
			Keywords: []string{"579ev", "electric", "battery", "charging", "range", "zero emission"},
		},
		{
			ID:       "driver_comfort",
			Label:    "Driver Comfort",
			Keywords: []string{"sleeper", "interior", "ergonomic", "seat", "comfort", "cab"},
		},
		{
			ID:       "uptime_reliability",
			Label:    "Uptime & Reliability",
			Keywords: []string{"powertrain", "engine", "service", "dealer", "breakdown", "repair", "uptime"},
		},
	}
}

func newTestMatcher() *TaxonomyMatcher {
	return NewTaxonomyMatcher(testTaxonomy(), newTestPreprocessor())
}

func TestMatch_PicksHighestOverlap(t *testing.T) {
	m := newTestMatcher()

	id, label, _ := m.Match([]string{"electric", "battery", "charging", "range"})
	assert.Equal(t, "ev_adoption", id)
	assert.Equal(t, "EV Adoption", label)

	id, label, _ = m.Match([]string{"sleeper", "interior", "seat", "comfort"})
	assert.Equal(t, "driver_comfort", id)
	assert.Equal(t, "Driver Comfort", label)
}

func TestMatch_TieGoesToFirstDeclaredCategory(t *testing.T) {
	m := newTestMatcher()

	// One keyword from each of the first two categories.
	id, _, _ := m.Match([]string{"battery", "sleeper"})
	assert.Equal(t, "ev_adoption", id)
}

func TestMatch_MultiWordKeywordsMatchPerToken(t *testing.T) {
	m := newTestMatcher()

	// "zero emission" contributes both tokens to the EV keyword set.
	id, _, _ := m.Match([]string{"zero", "emission"})
	assert.Equal(t, "ev_adoption", id)
}

func TestMatch_NoOverlapSynthesizesCategory(t *testing.T) {
	m := newTestMatcher()

	id, label, description := m.Match([]string{"tailgate", "hinge", "squeak", "paint"})
	assert.Regexp(t, `^custom_[0-9a-f]{8}$`, id)
	assert.Equal(t, "Tailgate / Hinge / Squeak", label)
	assert.Contains(t, description, "tailgate, hinge, squeak")
}

func TestMatch_SynthesizedIDIsContentAddressed(t *testing.T) {
	m := newTestMatcher()

	id1, _, _ := m.Match([]string{"tailgate", "hinge", "squeak"})
	id2, _, _ := m.Match([]string{"tailgate", "hinge", "squeak"})
	id3, _, _ := m.Match([]string{"paint", "chip", "rust"})

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
}

func TestMatch_NoTermsFallsBackToUncategorized(t *testing.T) {
	m := newTestMatcher()

	id, label, _ := m.Match(nil)
	assert.Equal(t, "custom_empty", id)
	assert.Equal(t, "Uncategorized", label)
}
