package service

import (
	"regexp"
	"strings"
)

var (
	urlPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionPattern  = regexp.MustCompile(`@\w+`)
	hashtagPattern  = regexp.MustCompile(`#(\w+)`)
	nonAlnumPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// generalStopwords is the builtin English stopword list. Domain-specific
// additions come from configuration.
var generalStopwords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to",
	"of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were",
	"be", "been", "being", "it", "this", "that", "these", "those", "from",
	"up", "down", "over", "under", "again", "further", "than", "so", "such",
	"into", "about", "between", "through", "during", "before", "after",
	"above", "below", "out", "off", "own", "same", "too", "very", "can",
	"will", "just", "don", "should", "now", "i", "me", "my", "we", "our",
	"you", "your", "he", "him", "his", "she", "her", "they", "them", "their",
	"what", "which", "who", "whom", "am", "have", "has", "had", "do", "does",
	"did", "not", "no", "nor", "only", "more", "most", "other", "some",
	"any", "both", "each", "few", "all", "when", "where", "why", "how",
	"there", "here", "while", "because", "until", "against", "once",
}

// Preprocessor normalizes raw post text into a token list suitable for
// vectorization. Empty or degenerate input silently yields an empty token
// list; downstream stages tolerate that.
type Preprocessor struct {
	stopwords      map[string]struct{}
	minTokenLength int
}

// NewPreprocessor creates a preprocessor with the builtin stopword list plus
// the given domain-specific additions.
func NewPreprocessor(domainStopwords []string, minTokenLength int) *Preprocessor {
	stops := make(map[string]struct{}, len(generalStopwords)+len(domainStopwords))
	for _, w := range generalStopwords {
		stops[w] = struct{}{}
	}
	for _, w := range domainStopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Preprocessor{
		stopwords:      stops,
		minTokenLength: minTokenLength,
	}
}

// CleanText lowercases the text, strips URLs and mentions, unwraps hashtags,
// removes non-alphanumeric characters and collapses whitespace.
func (p *Preprocessor) CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = hashtagPattern.ReplaceAllString(text, "$1")
	text = nonAlnumPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Tokenize runs the full normalization pipeline: clean, split on whitespace,
// drop stopwords and tokens shorter than the minimum length.
func (p *Preprocessor) Tokenize(text string) []string {
	cleaned := p.CleanText(text)
	if cleaned == "" {
		return nil
	}

	var tokens []string
	for _, t := range strings.Fields(cleaned) {
		if len(t) < p.minTokenLength {
			continue
		}
		if _, stop := p.stopwords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
