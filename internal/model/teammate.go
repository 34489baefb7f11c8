package model

import "fmt"

// TeammatePair names two drivers sharing identical machinery for a season.
// Pairs are fixed, bidirectional configuration data; every driver belongs to
// at most one pair.
type TeammatePair struct {
	DriverA string `json:"driver_a"`
	DriverB string `json:"driver_b"`
}

// Other returns the teammate of the given driver, or false if the driver is
// not a member of the pair.
func (p TeammatePair) Other(driverID string) (string, bool) {
	switch driverID {
	case p.DriverA:
		return p.DriverB, true
	case p.DriverB:
		return p.DriverA, true
	}
	return "", false
}

// ValidatePairs checks that no driver appears in more than one pair and that
// no pair is degenerate.
func ValidatePairs(pairs []TeammatePair) error {
	seen := make(map[string]bool, len(pairs)*2)
	for _, p := range pairs {
		if p.DriverA == "" || p.DriverB == "" {
			return fmt.Errorf("teammate pair %q/%q: empty driver id", p.DriverA, p.DriverB)
		}
		if p.DriverA == p.DriverB {
			return fmt.Errorf("teammate pair: %s paired with itself", p.DriverA)
		}
		for _, d := range []string{p.DriverA, p.DriverB} {
			if seen[d] {
				return fmt.Errorf("teammate pair: %s appears in more than one pair", d)
			}
			seen[d] = true
		}
	}
	return nil
}

// TeammateDelta is a driver's performance relative to their teammate, computed
// over the sessions both contested. Sign conventions: positive PointsDelta and
// PositionDelta mean the driver outperforms the teammate; a negative
// QualifyingDelta means the driver is faster.
type TeammateDelta struct {
	DriverID   string `json:"driver_id"`
	TeammateID string `json:"teammate_id"`

	PointsDelta     float64 `json:"points_delta"`
	QualifyingDelta float64 `json:"qualifying_delta_seconds"`
	PositionDelta   float64 `json:"position_delta"`

	// Coverage describes how much of the season the comparison spans. A
	// mid-season replacement is compared only over the overlap; the missing
	// fraction is reported here rather than silently extrapolated.
	CommonRaceSessions       int     `json:"common_race_sessions"`
	CommonQualifyingSessions int     `json:"common_qualifying_sessions"`
	Coverage                 float64 `json:"coverage"`
}
