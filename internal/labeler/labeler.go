package labeler

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// Output is the result of one labeling run: a classification per driver,
// normalized feature importances for explainability, and the seed-set
// training accuracy.
type Output struct {
	Results          []model.ClassificationResult
	Importances      map[string]float64
	RankedFeatures   []string
	TrainingAccuracy float64
	SeedCount        int
	PredictedCount   int
}

// Label trains the ensemble on the seed-labeled subset of vectors and infers
// labels for the remainder. Seed drivers are reported verbatim with
// confidence 1.0 and source=seed; everyone else gets the model's class and
// its class-probability as confidence. Given identical inputs and the same
// seed the output is identical.
func Label(vectors []model.FeatureVector, seeds map[string]model.StyleLabel, cfg ForestConfig) (*Output, error) {
	if len(vectors) == 0 {
		return nil, common.ErrNoVectors
	}
	if len(seeds) == 0 {
		return nil, common.ErrNoSeedLabels
	}

	// Canonical ordering makes the run independent of caller map/slice order.
	ordered := make([]model.FeatureVector, len(vectors))
	copy(ordered, vectors)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].DriverID < ordered[j].DriverID })

	classes := model.AllStyleLabels()
	classIndex := make(map[model.StyleLabel]int, len(classes))
	for i, label := range classes {
		classIndex[label] = i
	}

	var trainVectors, inferVectors []model.FeatureVector
	var trainY []int
	for _, v := range ordered {
		label, isSeed := seeds[v.DriverID]
		if !isSeed {
			inferVectors = append(inferVectors, v)
			continue
		}
		idx, known := classIndex[label]
		if !known {
			return nil, fmt.Errorf("seed label for %s: unknown style %q", v.DriverID, label)
		}
		trainVectors = append(trainVectors, v)
		trainY = append(trainY, idx)
	}

	if len(trainVectors) == 0 {
		return nil, common.ErrNoSeedLabels
	}
	if distinct(trainY) < 2 {
		return nil, common.ErrInsufficientSeeds
	}
	for driverID := range seeds {
		if !containsDriver(ordered, driverID) {
			slog.Warn("seed label has no feature vector", "driver", driverID)
		}
	}

	trainX := make([][]float64, len(trainVectors))
	for i, v := range trainVectors {
		trainX[i] = v.Values()
	}

	scaler, err := FitScaler(trainX)
	if err != nil {
		return nil, err
	}
	scaledTrain := scaler.TransformAll(trainX)

	weights := balancedWeights(trainY, len(classes))

	forest, err := TrainForest(scaledTrain, trainY, weights, len(classes), cfg)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Importances:    make(map[string]float64, model.NumFeatures),
		SeedCount:      len(trainVectors),
		PredictedCount: len(inferVectors),
	}

	correct := 0
	for i, row := range scaledTrain {
		if pred, _ := forest.Predict(row); pred == trainY[i] {
			correct++
		}
	}
	out.TrainingAccuracy = float64(correct) / float64(len(scaledTrain))

	for i, v := range trainVectors {
		out.Results = append(out.Results, model.NewSeedResult(v, classes[trainY[i]]))
	}
	for _, v := range inferVectors {
		pred, confidence := forest.Predict(scaler.Transform(v.Values()))
		out.Results = append(out.Results, model.NewPredictedResult(v, classes[pred], confidence))
	}
	sort.Slice(out.Results, func(i, j int) bool {
		return out.Results[i].DriverID < out.Results[j].DriverID
	})

	importances := forest.FeatureImportances()
	for f, name := range model.FeatureNames {
		out.Importances[name] = importances[f]
	}
	out.RankedFeatures = rankFeatures(importances)

	slog.Info("labeling complete",
		"seeds", out.SeedCount,
		"predicted", out.PredictedCount,
		"training_accuracy", out.TrainingAccuracy,
		"top_feature", out.RankedFeatures[0])

	return out, nil
}

// balancedWeights gives each class weight n/(k*count) so an uneven seed
// distribution across the three labels cannot dominate training.
func balancedWeights(y []int, numClasses int) []float64 {
	counts := make([]int, numClasses)
	for _, c := range y {
		counts[c]++
	}
	n := float64(len(y))
	k := float64(distinct(y))

	weights := make([]float64, len(y))
	for i, c := range y {
		weights[i] = n / (k * float64(counts[c]))
	}
	return weights
}

func rankFeatures(importances []float64) []string {
	names := make([]string, len(model.FeatureNames))
	copy(names, model.FeatureNames)
	sort.SliceStable(names, func(i, j int) bool {
		return importances[indexOf(names[i])] > importances[indexOf(names[j])]
	})
	return names
}

func indexOf(name string) int {
	for i, n := range model.FeatureNames {
		if n == name {
			return i
		}
	}
	return -1
}

func distinct(y []int) int {
	seen := make(map[int]bool, len(y))
	for _, c := range y {
		seen[c] = true
	}
	return len(seen)
}

func containsDriver(vectors []model.FeatureVector, driverID string) bool {
	for _, v := range vectors {
		if v.DriverID == driverID {
			return true
		}
	}
	return false
}
