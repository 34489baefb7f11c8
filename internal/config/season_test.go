package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

func TestLoadSeasonConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := LoadSeasonConfig()
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSeverityWeights(), cfg.Weights)
	assert.Empty(t, cfg.Pairs)
	assert.Empty(t, cfg.Seeds)
	assert.Equal(t, 30, cfg.Forest.Trees)
	assert.Equal(t, int64(42), cfg.Forest.Seed)
}

func TestLoadSeasonConfig_Full(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("severity_weights", map[string]any{"caused_red_flag": 15})
	viper.Set("teammates", []map[string]any{
		{"driver_a": "ver", "driver_b": "tsu"},
		{"driver_a": "NOR", "driver_b": "PIA"},
	})
	viper.Set("seeds", map[string]string{
		"VER": "Aggressive",
		"nor": "Consistent",
	})
	viper.Set("forest.trees", 50)
	viper.Set("forest.seed", 7)

	cfg, err := LoadSeasonConfig()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Weights[model.KindCausedRedFlag])
	assert.Equal(t, 8, cfg.Weights[model.KindPenalty10s], "unset kinds keep defaults")

	require.Len(t, cfg.Pairs, 2)
	assert.Equal(t, model.TeammatePair{DriverA: "VER", DriverB: "TSU"}, cfg.Pairs[0])

	assert.Equal(t, model.StyleAggressive, cfg.Seeds["VER"])
	assert.Equal(t, model.StyleConsistent, cfg.Seeds["NOR"], "seed keys normalized to upper case")

	assert.Equal(t, 50, cfg.Forest.Trees)
	assert.Equal(t, int64(7), cfg.Forest.Seed)
	assert.Equal(t, 3, cfg.Forest.MaxDepth, "unset forest fields keep defaults")
}

func TestLoadSeasonConfig_Invalid(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("seeds", map[string]string{"VER": "Reckless"})
	_, err := LoadSeasonConfig()
	assert.Error(t, err)

	viper.Reset()
	viper.Set("teammates", []map[string]any{
		{"driver_a": "VER", "driver_b": "TSU"},
		{"driver_a": "VER", "driver_b": "NOR"},
	})
	_, err = LoadSeasonConfig()
	assert.Error(t, err)

	viper.Reset()
	viper.Set("severity_weights", map[string]any{"penalty_5s": 0})
	_, err = LoadSeasonConfig()
	assert.Error(t, err)
}

func TestExpandPathEnvVar(t *testing.T) {
	t.Setenv("F1ML_TEST_DIR", "/data")
	assert.Equal(t, "/data/season.json", ExpandPath("$F1ML_TEST_DIR/season.json"))
	assert.Equal(t, "", ExpandPath(""))
}
