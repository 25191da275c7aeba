package service

import (
	"math"
	"sort"
)

// FeatureMatrix is the TF-IDF representation of a corpus. Row i corresponds
// to document i; the vocabulary is sorted so the column layout is stable
// across runs on identical input.
type FeatureMatrix struct {
	Vocabulary []string
	Index      map[string]int
	Vectors    [][]float64
}

// Vectorizer builds weighted term-frequency/inverse-document-frequency
// matrices over a tokenized corpus.
type Vectorizer struct{}

// NewVectorizer creates a Vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Vectorize computes the TF-IDF matrix for the corpus. Documents with no
// known terms produce zero vectors; an empty corpus produces an empty matrix.
func (v *Vectorizer) Vectorize(corpus [][]string) *FeatureMatrix {
	// Document frequencies over the whole corpus.
	df := make(map[string]int)
	for _, tokens := range corpus {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	// Smoothed IDF keeps terms present in every document from zeroing out.
	n := float64(len(corpus))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	vectors := make([][]float64, len(corpus))
	for i, tokens := range corpus {
		vec := make([]float64, len(terms))
		if len(tokens) > 0 {
			tf := make(map[int]int, len(tokens))
			for _, tok := range tokens {
				tf[index[tok]]++
			}
			for idx, count := range tf {
				vec[idx] = float64(count) / float64(len(tokens)) * idf[idx]
			}
			l2Normalize(vec)
		}
		vectors[i] = vec
	}

	return &FeatureMatrix{
		Vocabulary: terms,
		Index:      index,
		Vectors:    vectors,
	}
}

func l2Normalize(vec []float64) {
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] /= norm
	}
}
