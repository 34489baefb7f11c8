// Package config loads season configuration and resolves filesystem paths.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/labeler"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// SeasonConfig is everything a pipeline run needs beyond the season data
// itself: severity weights, teammate pairings, seed labels and forest
// settings.
type SeasonConfig struct {
	Weights model.SeverityWeights
	Pairs   []model.TeammatePair
	Seeds   map[string]model.StyleLabel
	Forest  labeler.ForestConfig
}

// LoadSeasonConfig reads season configuration from Viper. Precedence follows
// the usual Viper order: flags, then F1ML_ environment variables, then the
// config file. Severity weights start from the defaults and individual kinds
// may be overridden; pairs and seeds have no defaults and come entirely from
// configuration.
func LoadSeasonConfig() (*SeasonConfig, error) {
	cfg := &SeasonConfig{
		Weights: model.DefaultSeverityWeights(),
		Seeds:   make(map[string]model.StyleLabel),
		Forest:  labeler.DefaultForestConfig(),
	}

	for kind, weight := range viper.GetStringMap("severity_weights") {
		w, ok := weight.(int)
		if !ok {
			return nil, fmt.Errorf("%w: severity_weights.%s: expected integer, got %T", common.ErrInvalidConfig, kind, weight)
		}
		cfg.Weights[model.IncidentKind(kind)] = w
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}

	var rawPairs []struct {
		DriverA string `mapstructure:"driver_a"`
		DriverB string `mapstructure:"driver_b"`
	}
	if err := viper.UnmarshalKey("teammates", &rawPairs); err != nil {
		return nil, fmt.Errorf("failed to parse teammates: %w", err)
	}
	for _, p := range rawPairs {
		cfg.Pairs = append(cfg.Pairs, model.TeammatePair{
			DriverA: strings.ToUpper(p.DriverA),
			DriverB: strings.ToUpper(p.DriverB),
		})
	}
	if err := model.ValidatePairs(cfg.Pairs); err != nil {
		return nil, err
	}

	// Viper lowercases map keys; driver codes are canonically upper.
	for driver, label := range viper.GetStringMapString("seeds") {
		parsed, err := model.ParseStyleLabel(label)
		if err != nil {
			return nil, fmt.Errorf("%w: seeds.%s: %v", common.ErrInvalidConfig, driver, err)
		}
		cfg.Seeds[strings.ToUpper(driver)] = parsed
	}

	if v := viper.GetInt("forest.trees"); v > 0 {
		cfg.Forest.Trees = v
	}
	if v := viper.GetInt("forest.max_depth"); v > 0 {
		cfg.Forest.MaxDepth = v
	}
	if v := viper.GetInt("forest.seed"); viper.IsSet("forest.seed") {
		cfg.Forest.Seed = int64(v)
	}

	return cfg, nil
}
