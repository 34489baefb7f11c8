package model

import "fmt"

// IncidentKind categorizes a classified racing incident.
type IncidentKind string

// Incident kind constants, ordered roughly by steward severity.
const (
	KindPenalty5s             IncidentKind = "penalty_5s"
	KindPenalty10s            IncidentKind = "penalty_10s"
	KindPenaltyDriveThrough   IncidentKind = "penalty_drive_through"
	KindPenaltyGrid           IncidentKind = "penalty_grid"
	KindCausedCollision       IncidentKind = "caused_collision"
	KindCrashBarrier          IncidentKind = "crash_barrier"
	KindCrashStopped          IncidentKind = "crash_stopped"
	KindCausedRedFlag         IncidentKind = "caused_red_flag"
	KindFalseStart            IncidentKind = "false_start"
	KindTrackLimitsPersistent IncidentKind = "track_limits_persistent"
)

// AllIncidentKinds lists every known kind in a stable order.
func AllIncidentKinds() []IncidentKind {
	return []IncidentKind{
		KindPenalty5s,
		KindPenalty10s,
		KindPenaltyDriveThrough,
		KindPenaltyGrid,
		KindCausedCollision,
		KindCrashBarrier,
		KindCrashStopped,
		KindCausedRedFlag,
		KindFalseStart,
		KindTrackLimitsPersistent,
	}
}

// Incident is a single classified, severity-scored event attributed to exactly
// one driver. Incidents are never mutated after creation.
type Incident struct {
	DriverID  string       `json:"driver_id"`
	SessionID string       `json:"session_id"`
	Kind      IncidentKind `json:"kind"`
	Severity  int          `json:"severity"`
}

// SeverityWeights maps incident kinds to their risk contribution. The table is
// season configuration, passed explicitly into the classifier and aggregator
// so weights can be swapped without code change.
type SeverityWeights map[IncidentKind]int

// DefaultSeverityWeights returns the weights aligned with FIA penalty
// severity.
func DefaultSeverityWeights() SeverityWeights {
	return SeverityWeights{
		KindPenalty5s:             5,
		KindPenalty10s:            8,
		KindPenaltyDriveThrough:   10,
		KindPenaltyGrid:           5,
		KindCausedCollision:       10,
		KindCrashBarrier:          8,
		KindCrashStopped:          6,
		KindCausedRedFlag:         12,
		KindFalseStart:            5,
		KindTrackLimitsPersistent: 3,
	}
}

// Validate ensures every known kind carries a positive weight.
func (w SeverityWeights) Validate() error {
	for _, kind := range AllIncidentKinds() {
		weight, ok := w[kind]
		if !ok {
			return fmt.Errorf("severity weights: missing weight for %s", kind)
		}
		if weight <= 0 {
			return fmt.Errorf("severity weights: non-positive weight %d for %s", weight, kind)
		}
	}
	return nil
}

// DriverRiskProfile is a driver's season-cumulative incident record.
// Invariant: TotalRisk equals the weighted sum of per-kind counts.
type DriverRiskProfile struct {
	DriverID  string               `json:"driver_id"`
	TotalRisk int                  `json:"total_risk"`
	Counts    map[IncidentKind]int `json:"counts"`
}

// IncidentCount returns the total number of incidents across all kinds.
func (p DriverRiskProfile) IncidentCount() int {
	total := 0
	for _, n := range p.Counts {
		total += n
	}
	return total
}
