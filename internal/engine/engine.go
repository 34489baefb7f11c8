// Package engine orchestrates the season pipeline: message classification,
// risk aggregation, teammate deltas, race features, the feature-vector join,
// and the final labeling barrier.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charleshss/f1-ai-ml-project/internal/features"
	"github.com/charleshss/f1-ai-ml-project/internal/incident"
	"github.com/charleshss/f1-ai-ml-project/internal/labeler"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
	"github.com/charleshss/f1-ai-ml-project/internal/race"
	"github.com/charleshss/f1-ai-ml-project/internal/teammate"
)

// Config holds everything a season run needs beyond the raw data: the
// severity weight table, the fixed teammate pairings, the seed labels, and
// the ensemble settings. All of it is configuration supplied at start, never
// computed.
type Config struct {
	Weights model.SeverityWeights
	Pairs   []model.TeammatePair
	Seeds   map[string]model.StyleLabel
	Forest  labeler.ForestConfig

	// Progress, when set, is invoked after each race control message is
	// consumed during classification.
	Progress func(done, total int)
}

// CoverageSummary reports how completely the run covered the input, so
// partial data surfaces as flags instead of silent bias.
type CoverageSummary struct {
	MessagesProcessed int                 `json:"messages_processed"`
	MessagesSkipped   int                 `json:"messages_skipped"`
	MessagesMalformed int                 `json:"messages_malformed"`
	IncidentsFound    int                 `json:"incidents_found"`
	ExcludedDrivers   map[string][]string `json:"excluded_drivers,omitempty"`
	TeammateCoverage  map[string]float64  `json:"teammate_coverage"`
}

// Result is the fully-materialized output of one season run.
type Result struct {
	Season           int
	Incidents        []model.Incident
	RiskProfiles     map[string]model.DriverRiskProfile
	Deltas           map[string]model.TeammateDelta
	RaceFeatures     map[string]model.RaceFeatureSet
	Vectors          []model.FeatureVector
	Classifications  []model.ClassificationResult
	Importances      map[string]float64
	RankedFeatures   []string
	TrainingAccuracy float64
	Coverage         CoverageSummary
}

// Engine runs the batch pipeline. Each stage consumes a fully-materialized
// input and produces a fully-materialized output; the labeler runs last, once
// every feature vector exists.
type Engine struct {
	cfg    Config
	season *incident.SeasonClassifier
}

// New validates the configuration and builds an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Weights == nil {
		cfg.Weights = model.DefaultSeverityWeights()
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if err := model.ValidatePairs(cfg.Pairs); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if cfg.Forest.Trees == 0 {
		cfg.Forest = labeler.DefaultForestConfig()
	}

	season, err := incident.NewSeasonClassifier(cfg.Weights)
	if err != nil {
		return nil, err
	}
	if cfg.Progress != nil {
		season.OnProgress(cfg.Progress)
	}
	return &Engine{cfg: cfg, season: season}, nil
}

// Run executes the pipeline over one season of data. Recoverable conditions
// (unattributed events, partial teammate coverage, incomplete vectors) are
// collected into the coverage summary; only structural failures abort the
// run.
func (e *Engine) Run(ctx context.Context, data model.SeasonData) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rosters := make(map[string]incident.Roster, len(data.Rosters()))
	for sessionID, roster := range data.Rosters() {
		rosters[sessionID] = incident.Roster(roster)
	}

	slog.Info("classifying race control messages",
		"season", data.Season, "messages", len(data.Messages))
	incidents, stats, err := e.season.Run(data.Messages, rosters)
	if err != nil {
		return nil, fmt.Errorf("incident classification: %w", err)
	}

	profiles := incident.AggregateRisk(incidents, e.cfg.Weights)

	deltas, err := teammate.Compute(data.Results, e.cfg.Pairs)
	if err != nil {
		return nil, fmt.Errorf("teammate deltas: %w", err)
	}

	raceFeatures, err := race.Aggregate(data.Laps, data.Results)
	if err != nil {
		return nil, fmt.Errorf("race features: %w", err)
	}

	vectors, excluded := features.BuildAll(profiles, deltas, raceFeatures)

	coverage := CoverageSummary{
		MessagesProcessed: stats.Processed,
		MessagesSkipped:   stats.Skipped,
		MessagesMalformed: stats.Malformed,
		IncidentsFound:    len(incidents),
		ExcludedDrivers:   make(map[string][]string),
		TeammateCoverage:  make(map[string]float64, len(deltas)),
	}
	for _, exc := range excluded {
		coverage.ExcludedDrivers[exc.DriverID] = exc.Missing
		slog.Warn("driver excluded from labeling",
			"driver", exc.DriverID, "missing", exc.Missing)
	}
	for driverID, delta := range deltas {
		coverage.TeammateCoverage[driverID] = delta.Coverage
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Barrier: labeling only starts once every vector exists.
	labeled, err := labeler.Label(vectors, e.cfg.Seeds, e.cfg.Forest)
	if err != nil {
		return nil, fmt.Errorf("labeling: %w", err)
	}

	return &Result{
		Season:           data.Season,
		Incidents:        incidents,
		RiskProfiles:     profiles,
		Deltas:           deltas,
		RaceFeatures:     raceFeatures,
		Vectors:          vectors,
		Classifications:  labeled.Results,
		Importances:      labeled.Importances,
		RankedFeatures:   labeled.RankedFeatures,
		TrainingAccuracy: labeled.TrainingAccuracy,
		Coverage:         coverage,
	}, nil
}
