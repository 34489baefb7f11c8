package labeler

import (
	"fmt"
	"math"
	"math/rand"
)

// ForestConfig controls the ensemble. The defaults deliberately favor many
// shallow weak trees over a few deep ones.
type ForestConfig struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Seed            int64
}

// DefaultForestConfig returns the standard ensemble settings.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:           30,
		MaxDepth:        3,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Seed:            42,
	}
}

// RandomForest is a bagged ensemble of depth-bounded CART trees.
type RandomForest struct {
	trees       []*decisionTree
	importances []float64
	numClasses  int
}

// TrainForest fits the ensemble on standardized features x, class indices y
// and per-sample weights. Training is fully deterministic for a given seed:
// trees are grown sequentially from a single seeded source.
func TrainForest(x [][]float64, y []int, weights []float64, numClasses int, cfg ForestConfig) (*RandomForest, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("forest: no training rows")
	}
	if len(y) != len(x) || len(weights) != len(x) {
		return nil, fmt.Errorf("forest: mismatched inputs (%d rows, %d labels, %d weights)",
			len(x), len(y), len(weights))
	}
	if cfg.Trees <= 0 || cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("forest: invalid config %+v", cfg)
	}

	numFeatures := len(x[0])
	maxFeatures := int(math.Sqrt(float64(numFeatures)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	treeCfg := treeConfig{
		maxDepth:        cfg.MaxDepth,
		minSamplesSplit: cfg.MinSamplesSplit,
		minSamplesLeaf:  cfg.MinSamplesLeaf,
		maxFeatures:     maxFeatures,
		numClasses:      numClasses,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	forest := &RandomForest{
		trees:       make([]*decisionTree, 0, cfg.Trees),
		importances: make([]float64, numFeatures),
		numClasses:  numClasses,
	}

	n := len(x)
	for i := 0; i < cfg.Trees; i++ {
		// Bootstrap sample with replacement.
		idx := make([]int, n)
		for j := range idx {
			idx[j] = rng.Intn(n)
		}
		tree := growTree(x, y, weights, idx, treeCfg, rng)
		forest.trees = append(forest.trees, tree)
		for f, imp := range tree.importances {
			forest.importances[f] += imp
		}
	}

	// Normalize to a distribution over features.
	total := sum(forest.importances)
	if total > 0 {
		for f := range forest.importances {
			forest.importances[f] /= total
		}
	}

	return forest, nil
}

// PredictProba returns the mean leaf class distribution across trees.
func (f *RandomForest) PredictProba(row []float64) []float64 {
	proba := make([]float64, f.numClasses)
	for _, tree := range f.trees {
		for c, p := range tree.predictProba(row) {
			proba[c] += p
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.trees))
	}
	return proba
}

// Predict returns the majority class index and its probability.
func (f *RandomForest) Predict(row []float64) (int, float64) {
	proba := f.PredictProba(row)
	best := 0
	for c, p := range proba {
		if p > proba[best] {
			best = c
		}
	}
	return best, proba[best]
}

// FeatureImportances returns the normalized Gini importance per feature, in
// feature order. The slice sums to 1 when any split occurred.
func (f *RandomForest) FeatureImportances() []float64 {
	out := make([]float64, len(f.importances))
	copy(out, f.importances)
	return out
}
