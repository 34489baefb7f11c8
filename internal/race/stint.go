package race

import (
	"gonum.org/v1/gonum/stat"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// minStintLaps is the shortest stint carrying enough signal to measure
// degradation.
const minStintLaps = 6

// degradationWindow is the number of laps averaged at each end of a stint.
const degradationWindow = 3

// stint is a contiguous run of laps on one tyre compound within a session.
type stint struct {
	compound string
	laps     []model.LapRecord
}

// segmentStints splits a driver's session laps (already sorted by lap number)
// into compound stints. A stint breaks on a compound change or a gap in lap
// numbers larger than one, which covers red-flag restarts and missing laps.
func segmentStints(laps []model.LapRecord) []stint {
	var stints []stint
	var current stint

	flush := func() {
		if len(current.laps) > 0 {
			stints = append(stints, current)
		}
		current = stint{}
	}

	for _, lap := range laps {
		if lap.TyreCompound == "" {
			flush()
			continue
		}
		if len(current.laps) > 0 {
			last := current.laps[len(current.laps)-1]
			if lap.TyreCompound != current.compound || lap.LapNumber > last.LapNumber+1 {
				flush()
			}
		}
		if len(current.laps) == 0 {
			current.compound = lap.TyreCompound
		}
		current.laps = append(current.laps, lap)
	}
	flush()

	return stints
}

// degradation returns mean(last-3 lap times) - mean(first-3 lap times) for
// the stint, or false when the stint is too short to carry signal.
func (s stint) degradation() (float64, bool) {
	if len(s.laps) < minStintLaps {
		return 0, false
	}

	first := make([]float64, 0, degradationWindow)
	for _, lap := range s.laps[:degradationWindow] {
		first = append(first, lap.LapTime)
	}
	last := make([]float64, 0, degradationWindow)
	for _, lap := range s.laps[len(s.laps)-degradationWindow:] {
		last = append(last, lap.LapTime)
	}

	return stat.Mean(last, nil) - stat.Mean(first, nil), true
}
