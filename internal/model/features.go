package model

// RaceFeatureSet is a driver's season-aggregated race craft metrics derived
// from lap timing.
type RaceFeatureSet struct {
	DriverID string `json:"driver_id"`
	// Consistency is the standard deviation of non-outlier lap times within
	// each race, averaged across races; lower is steadier.
	Consistency float64 `json:"consistency"`
	// PositionChange is grid minus finish averaged across races, so gaining
	// places is positive.
	PositionChange float64 `json:"position_change"`
	// TyreDegradation is the mean of (last-3 lap mean - first-3 lap mean)
	// across compound stints of at least six laps.
	TyreDegradation float64 `json:"tyre_degradation"`
	// RacesCompleted counts races with enough timed laps to contribute.
	RacesCompleted int `json:"races_completed"`
}

// FeatureNames is the fixed feature ordering consumed by the labeler. Vector
// values, scaler statistics and feature importances all follow this order.
var FeatureNames = []string{
	"risk_score",
	"points_delta",
	"qualifying_delta",
	"position_delta",
	"consistency",
	"position_change",
	"tyre_degradation",
}

// NumFeatures is the dimensionality of a FeatureVector.
const NumFeatures = 7

// FeatureVector is the fixed 7-dimensional record consumed by the labeler,
// created once per driver per season and immutable thereafter.
type FeatureVector struct {
	DriverID        string  `json:"driver_id"`
	RiskScore       float64 `json:"risk_score"`
	PointsDelta     float64 `json:"points_delta"`
	QualifyingDelta float64 `json:"qualifying_delta"`
	PositionDelta   float64 `json:"position_delta"`
	Consistency     float64 `json:"consistency"`
	PositionChange  float64 `json:"position_change"`
	TyreDegradation float64 `json:"tyre_degradation"`
}

// Values returns the vector in FeatureNames order.
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.RiskScore,
		v.PointsDelta,
		v.QualifyingDelta,
		v.PositionDelta,
		v.Consistency,
		v.PositionChange,
		v.TyreDegradation,
	}
}
