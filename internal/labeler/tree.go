package labeler

import (
	"math/rand"
	"sort"
)

// treeConfig bounds the growth of a single tree. Shallow depth keeps each
// tree a weak learner; the ensemble does the rest.
type treeConfig struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
	numClasses      int
}

// treeNode is one node of a fitted CART tree. Leaves carry the weighted class
// distribution of the training samples that reached them.
type treeNode struct {
	left      *treeNode
	right     *treeNode
	proba     []float64
	threshold float64
	feature   int
	leaf      bool
}

// decisionTree is a depth-bounded CART classifier fitted on weighted samples.
// importances accumulates weighted Gini impurity decrease per feature.
type decisionTree struct {
	root        *treeNode
	importances []float64
	cfg         treeConfig
	rootWeight  float64
}

// growTree fits a tree on the sample subset named by idx. rng drives feature
// subsampling only; passing the same seeded source yields the same tree.
func growTree(x [][]float64, y []int, weights []float64, idx []int, cfg treeConfig, rng *rand.Rand) *decisionTree {
	t := &decisionTree{
		importances: make([]float64, len(x[0])),
		cfg:         cfg,
		rootWeight:  weightSum(weights, idx),
	}
	t.root = t.build(x, y, weights, idx, 0, rng)
	return t
}

func (t *decisionTree) build(x [][]float64, y []int, weights []float64, idx []int, depth int, rng *rand.Rand) *treeNode {
	counts := classCounts(y, weights, idx, t.cfg.numClasses)
	total := sum(counts)

	node := &treeNode{leaf: true, proba: normalize(counts, total)}
	if depth >= t.cfg.maxDepth || len(idx) < t.cfg.minSamplesSplit || isPure(counts) {
		return node
	}

	feature, threshold, gain, ok := t.bestSplit(x, y, weights, idx, counts, rng)
	if !ok {
		return node
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) < t.cfg.minSamplesLeaf || len(rightIdx) < t.cfg.minSamplesLeaf {
		return node
	}

	t.importances[feature] += total / t.rootWeight * gain

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left = t.build(x, y, weights, leftIdx, depth+1, rng)
	node.right = t.build(x, y, weights, rightIdx, depth+1, rng)
	return node
}

// bestSplit searches a random feature subset for the threshold with the
// largest weighted Gini decrease.
func (t *decisionTree) bestSplit(x [][]float64, y []int, weights []float64, idx []int, counts []float64, rng *rand.Rand) (int, float64, float64, bool) {
	total := sum(counts)
	parentGini := gini(counts, total)

	numFeatures := len(x[0])
	candidates := rng.Perm(numFeatures)
	if t.cfg.maxFeatures < numFeatures {
		candidates = candidates[:t.cfg.maxFeatures]
	}
	// Deterministic tie-breaking between equally good features.
	sort.Ints(candidates)

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0

	type sample struct {
		value  float64
		class  int
		weight float64
	}
	samples := make([]sample, len(idx))

	for _, feature := range candidates {
		for i, si := range idx {
			samples[i] = sample{value: x[si][feature], class: y[si], weight: weights[si]}
		}
		sort.Slice(samples, func(a, b int) bool { return samples[a].value < samples[b].value })

		left := make([]float64, t.cfg.numClasses)
		leftTotal := 0.0

		for i := 0; i < len(samples)-1; i++ {
			left[samples[i].class] += samples[i].weight
			leftTotal += samples[i].weight

			if samples[i].value == samples[i+1].value {
				continue
			}

			rightTotal := total - leftTotal
			if leftTotal == 0 || rightTotal == 0 {
				continue
			}

			leftGini := gini(left, leftTotal)
			rightGini := giniComplement(counts, left, rightTotal)
			gain := parentGini - (leftTotal/total)*leftGini - (rightTotal/total)*rightGini

			if gain > bestGain+1e-12 {
				bestGain = gain
				bestFeature = feature
				bestThreshold = (samples[i].value + samples[i+1].value) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, 0, false
	}
	return bestFeature, bestThreshold, bestGain, true
}

// predictProba walks the tree for one standardized row.
func (t *decisionTree) predictProba(row []float64) []float64 {
	node := t.root
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.proba
}

func classCounts(y []int, weights []float64, idx []int, numClasses int) []float64 {
	counts := make([]float64, numClasses)
	for _, i := range idx {
		counts[y[i]] += weights[i]
	}
	return counts
}

func gini(counts []float64, total float64) float64 {
	g := 1.0
	for _, c := range counts {
		p := c / total
		g -= p * p
	}
	return g
}

// giniComplement computes the Gini of (parent - left) without allocating the
// right-side count slice.
func giniComplement(parent, left []float64, rightTotal float64) float64 {
	g := 1.0
	for i := range parent {
		p := (parent[i] - left[i]) / rightTotal
		g -= p * p
	}
	return g
}

func isPure(counts []float64) bool {
	nonzero := 0
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func normalize(counts []float64, total float64) []float64 {
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}

func weightSum(weights []float64, idx []int) float64 {
	total := 0.0
	for _, i := range idx {
		total += weights[i]
	}
	return total
}
