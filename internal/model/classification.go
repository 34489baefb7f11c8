package model

import "fmt"

// StyleLabel is a driver's season driving-style category.
type StyleLabel string

// Style label constants.
const (
	StyleAggressive StyleLabel = "Aggressive"
	StyleConsistent StyleLabel = "Consistent"
	StyleStruggling StyleLabel = "Struggling"
)

// AllStyleLabels lists the three categories in a stable order.
func AllStyleLabels() []StyleLabel {
	return []StyleLabel{StyleAggressive, StyleConsistent, StyleStruggling}
}

// ParseStyleLabel converts a string into a StyleLabel.
func ParseStyleLabel(s string) (StyleLabel, error) {
	switch StyleLabel(s) {
	case StyleAggressive, StyleConsistent, StyleStruggling:
		return StyleLabel(s), nil
	}
	return "", fmt.Errorf("unknown style label %q", s)
}

// StyleSource records how a classification was produced. Seed labels are
// human-assigned ground truth; predicted labels come from the trained model.
// The distinction is explicit so downstream consumers cannot mistake a
// prediction for ground truth.
type StyleSource string

// Style source constants.
const (
	SourceSeed      StyleSource = "seed"
	SourcePredicted StyleSource = "predicted"
)

// ClassificationResult is the terminal artifact for one driver: the assigned
// style, the confidence behind it, its provenance, and the feature vector it
// was derived from.
type ClassificationResult struct {
	DriverID   string        `json:"driver_id"`
	Label      StyleLabel    `json:"predicted_label"`
	Confidence float64       `json:"confidence"`
	Source     StyleSource   `json:"source"`
	Features   FeatureVector `json:"feature_vector"`
}

// NewSeedResult builds the result for a seed-labeled driver. Seed labels are
// reported verbatim with full confidence.
func NewSeedResult(vector FeatureVector, label StyleLabel) ClassificationResult {
	return ClassificationResult{
		DriverID:   vector.DriverID,
		Label:      label,
		Confidence: 1.0,
		Source:     SourceSeed,
		Features:   vector,
	}
}

// NewPredictedResult builds the result for a model-inferred driver.
func NewPredictedResult(vector FeatureVector, label StyleLabel, confidence float64) ClassificationResult {
	return ClassificationResult{
		DriverID:   vector.DriverID,
		Label:      label,
		Confidence: confidence,
		Source:     SourcePredicted,
		Features:   vector,
	}
}

// IsSeed reports whether the label is human-assigned ground truth.
func (r ClassificationResult) IsSeed() bool {
	return r.Source == SourceSeed
}
