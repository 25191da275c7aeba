package service

import (
	"strings"

	"github.com/jonreiter/govader"

	"go-social-insights/internal/analysis/dto"
)

// SentimentScorer scores post polarity with the VADER lexicon. Scoring
// operates on the original text, not the cleaned token list, because
// punctuation and negation matter for polarity.
type SentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewSentimentScorer creates a scorer with the default VADER lexicon.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Score returns the component scores for a single text. Blank input scores
// as fully neutral.
func (s *SentimentScorer) Score(content string) dto.SentimentScore {
	if strings.TrimSpace(content) == "" {
		return dto.SentimentScore{Neutral: 1.0}
	}

	scores := s.analyzer.PolarityScores(content)
	return dto.SentimentScore{
		Compound: scores.Compound,
		Positive: scores.Positive,
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
	}
}

// AggregateCompound returns the arithmetic mean of member compound scores.
// Aggregation is continuous rather than a vote over member labels, which
// avoids tie artifacts; the cluster label is re-derived from the mean.
func (s *SentimentScorer) AggregateCompound(compounds []float64) float64 {
	if len(compounds) == 0 {
		return 0.0
	}
	var total float64
	for _, c := range compounds {
		total += c
	}
	return total / float64(len(compounds))
}
