package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelForCompound(t *testing.T) {
	assert.Equal(t, SentimentPositive, LabelForCompound(0.8))
	assert.Equal(t, SentimentNegative, LabelForCompound(-0.8))
	assert.Equal(t, SentimentNeutral, LabelForCompound(0.0))

	// The thresholds themselves are inclusive.
	assert.Equal(t, SentimentPositive, LabelForCompound(PositiveThreshold))
	assert.Equal(t, SentimentNegative, LabelForCompound(NegativeThreshold))
	assert.Equal(t, SentimentNeutral, LabelForCompound(0.049))
	assert.Equal(t, SentimentNeutral, LabelForCompound(-0.049))
}

func TestSourceType_IsValid(t *testing.T) {
	assert.True(t, SourceTwitter.IsValid())
	assert.True(t, SourceYouTube.IsValid())
	assert.True(t, SourceForums.IsValid())
	assert.False(t, SourceType("myspace").IsValid())
	assert.False(t, SourceType("").IsValid())
}
