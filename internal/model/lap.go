package model

import "fmt"

// LapRecord is a single timed lap. Lap times are seconds. IsOutlier marks
// laps that do not reflect raw pace: pit in/out laps and laps run under
// caution.
type LapRecord struct {
	DriverID     string  `json:"driver_id"`
	SessionID    string  `json:"session_id"`
	LapNumber    int     `json:"lap_number"`
	LapTime      float64 `json:"lap_time"`
	TyreCompound string  `json:"tyre_compound"`
	IsOutlier    bool    `json:"is_outlier"`
}

// Validate checks the lap is structurally sound.
func (l LapRecord) Validate() error {
	if l.DriverID == "" || l.SessionID == "" {
		return fmt.Errorf("lap record: missing driver or session id")
	}
	if l.LapTime <= 0 {
		return fmt.Errorf("lap record %s/%s lap %d: non-positive lap time %.3f",
			l.SessionID, l.DriverID, l.LapNumber, l.LapTime)
	}
	return nil
}

// SessionResult is one driver's outcome in one session: championship points,
// grid and finish positions, and the representative qualifying time when one
// was set. RacingNumber links the driver to structured race control
// attribution.
type SessionResult struct {
	SessionID      string  `json:"session_id"`
	DriverID       string  `json:"driver_id"`
	RacingNumber   int     `json:"racing_number"`
	Points         float64 `json:"points"`
	GridPosition   int     `json:"grid_position"`
	FinishPosition int     `json:"finish_position"`
	// QualifyingTime is the best representative qualifying lap in seconds;
	// zero means the driver set no representative lap in this session.
	QualifyingTime float64 `json:"qualifying_time,omitempty"`
}

// HasQualifyingTime reports whether the driver set a representative lap.
func (r SessionResult) HasQualifyingTime() bool {
	return r.QualifyingTime > 0
}

// SeasonData is the fully-materialized input to one pipeline run: every race
// control message, lap record and session result for a season.
type SeasonData struct {
	Season   int             `json:"season"`
	Messages []EventMessage  `json:"messages"`
	Laps     []LapRecord     `json:"laps"`
	Results  []SessionResult `json:"results"`
}

// Rosters builds the per-session racing-number to driver mapping from session
// results. Attribution of structured race control messages goes through this
// mapping, never through free-text numerals.
func (d SeasonData) Rosters() map[string]map[int]string {
	rosters := make(map[string]map[int]string)
	for _, r := range d.Results {
		if r.RacingNumber == 0 {
			continue
		}
		roster, ok := rosters[r.SessionID]
		if !ok {
			roster = make(map[int]string)
			rosters[r.SessionID] = roster
		}
		roster[r.RacingNumber] = r.DriverID
	}
	return rosters
}
