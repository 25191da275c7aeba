package service

import (
	"math/rand"
	"sort"
	"strings"

	"go-social-insights/internal/entity"
)

// TopicCluster is one discovered topic group: the member post indices and
// the top terms ranked by centroid weight.
type TopicCluster struct {
	PostIndices []int
	TopTerms    []string
}

// Clusterer partitions a TF-IDF matrix into topic groups with k-means.
// The random source is seeded with a fixed value so repeated runs on
// identical input are deterministic; reproducibility of a business report
// must not depend on the phase of the RNG.
type Clusterer struct {
	maxClusters   int
	topKeywords   int
	maxIterations int
	minVocabulary int
	seed          int64
}

// NewClusterer creates a clusterer with the given tuning parameters.
func NewClusterer(maxClusters, topKeywords, maxIterations, minVocabulary int, seed int64) *Clusterer {
	return &Clusterer{
		maxClusters:   maxClusters,
		topKeywords:   topKeywords,
		maxIterations: maxIterations,
		minVocabulary: minVocabulary,
		seed:          seed,
	}
}

// Cluster partitions the corpus into at most maxClusters topic groups.
// Degenerate input is reported as a typed failure reason on the normal
// return path, never as an error: callers branch on the reason and can still
// persist per-post sentiment.
func (c *Clusterer) Cluster(corpus [][]string, matrix *FeatureMatrix) ([]TopicCluster, entity.FailureReason) {
	if len(corpus) < 2 {
		return nil, entity.ReasonInsufficientPosts
	}
	if len(matrix.Vocabulary) < c.minVocabulary {
		return nil, entity.ReasonInsufficientVocabulary
	}

	k := c.chooseK(corpus)
	centroids := c.initCentroids(corpus, matrix, k)
	assignments := make([]int, len(matrix.Vectors))

	for iter := 0; iter < c.maxIterations; iter++ {
		changed := false
		for i, vec := range matrix.Vectors {
			best := nearestCentroid(vec, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}
		recomputeCentroids(centroids, matrix.Vectors, assignments)
	}

	return c.buildClusters(matrix, assignments, len(centroids)), ""
}

// chooseK picks min(maxClusters, distinct documents) with a floor of 1.
// Distinctness is judged on the token signature so duplicated texts cannot
// inflate the cluster count.
func (c *Clusterer) chooseK(corpus [][]string) int {
	distinct := make(map[string]struct{}, len(corpus))
	for _, tokens := range corpus {
		distinct[strings.Join(tokens, " ")] = struct{}{}
	}

	k := c.maxClusters
	if len(distinct) < k {
		k = len(distinct)
	}
	if k < 1 {
		k = 1
	}
	return k
}

// initCentroids seeds centroids from a deterministic permutation of the
// first occurrence of each distinct document.
func (c *Clusterer) initCentroids(corpus [][]string, matrix *FeatureMatrix, k int) [][]float64 {
	seen := make(map[string]struct{}, len(corpus))
	var candidates []int
	for i, tokens := range corpus {
		sig := strings.Join(tokens, " ")
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		candidates = append(candidates, i)
	}

	rng := rand.New(rand.NewSource(c.seed))
	perm := rng.Perm(len(candidates))

	centroids := make([][]float64, 0, k)
	for _, p := range perm[:k] {
		centroid := make([]float64, len(matrix.Vocabulary))
		copy(centroid, matrix.Vectors[candidates[p]])
		centroids = append(centroids, centroid)
	}
	return centroids
}

// nearestCentroid returns the index of the closest centroid by squared
// Euclidean distance, lowest index winning ties.
func nearestCentroid(vec []float64, centroids [][]float64) int {
	best := 0
	bestDist := squaredDistance(vec, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := squaredDistance(vec, centroids[j]); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// recomputeCentroids moves each centroid to the mean of its members.
// A centroid left without members keeps its previous position.
func recomputeCentroids(centroids [][]float64, vectors [][]float64, assignments []int) {
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for j := range sums {
		sums[j] = make([]float64, len(centroids[j]))
	}

	for i, vec := range vectors {
		j := assignments[i]
		counts[j]++
		for d, v := range vec {
			sums[j][d] += v
		}
	}

	for j := range centroids {
		if counts[j] == 0 {
			continue
		}
		for d := range centroids[j] {
			centroids[j][d] = sums[j][d] / float64(counts[j])
		}
	}
}

// buildClusters collects member indices per centroid, ranks terms by
// centroid weight and drops clusters that ended up empty.
func (c *Clusterer) buildClusters(matrix *FeatureMatrix, assignments []int, k int) []TopicCluster {
	members := make([][]int, k)
	for i, j := range assignments {
		members[j] = append(members[j], i)
	}

	var clusters []TopicCluster
	for j := 0; j < k; j++ {
		if len(members[j]) == 0 {
			continue
		}

		centroid := make([]float64, len(matrix.Vocabulary))
		for _, i := range members[j] {
			for d, v := range matrix.Vectors[i] {
				centroid[d] += v
			}
		}

		clusters = append(clusters, TopicCluster{
			PostIndices: members[j],
			TopTerms:    c.topTerms(matrix.Vocabulary, centroid),
		})
	}
	return clusters
}

// topTerms ranks vocabulary terms by centroid weight, ties broken by
// vocabulary order for stable output.
func (c *Clusterer) topTerms(vocabulary []string, centroid []float64) []string {
	type termWeight struct {
		term   string
		weight float64
	}

	ranked := make([]termWeight, 0, len(vocabulary))
	for i, term := range vocabulary {
		if centroid[i] > 0 {
			ranked = append(ranked, termWeight{term: term, weight: centroid[i]})
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].weight != ranked[b].weight {
			return ranked[a].weight > ranked[b].weight
		}
		return ranked[a].term < ranked[b].term
	})

	n := c.topKeywords
	if len(ranked) < n {
		n = len(ranked)
	}
	terms := make([]string, 0, n)
	for _, tw := range ranked[:n] {
		terms = append(terms, tw.term)
	}
	return terms
}
