package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/state"
)

func rawString(s string) RawValue { return RawValue{raw: s, isRaw: true} }

func TestParse_Wildcard(t *testing.T) {
	v, err := Parse(rawString("*"))
	require.NoError(t, err)
	assert.Equal(t, state.Unspecified(), v)
}

func TestParse_NotNull(t *testing.T) {
	v, err := Parse(rawString("!null"))
	require.NoError(t, err)
	assert.Equal(t, state.NotNull(), v)
}

func TestParse_Thresholds(t *testing.T) {
	gt, err := Parse(rawString(">10"))
	require.NoError(t, err)
	assert.Equal(t, state.GT(10), gt)

	gte, err := Parse(rawString(">=10"))
	require.NoError(t, err)
	assert.Equal(t, state.GTE(10), gte)

	lt, err := Parse(rawString("<5"))
	require.NoError(t, err)
	assert.Equal(t, state.LT(5), lt)
}

func TestParse_PlainStringNotConfusedWithSentinel(t *testing.T) {
	v, err := Parse(rawString("weaponcrafting"))
	require.NoError(t, err)
	assert.Equal(t, state.String("weaponcrafting"), v)
}

func TestParse_LiteralBoolAndInt(t *testing.T) {
	b, err := Parse(RawValue{Literal: true})
	require.NoError(t, err)
	assert.Equal(t, state.Bool(true), b)

	i, err := Parse(RawValue{Literal: 42})
	require.NoError(t, err)
	assert.Equal(t, state.Int(42), i)
}

func TestParse_LiteralNestedMap(t *testing.T) {
	v, err := Parse(RawValue{Literal: map[string]interface{}{"x": 1, "y": 2}})
	require.NoError(t, err)
	require.Equal(t, state.KindRecord, v.Kind)
	assert.Equal(t, state.Int(1), v.Record["x"])
}

func TestBuildCatalog(t *testing.T) {
	cfg := &ActionsConfig{
		Actions: map[string]ActionDef{
			"move": {
				Conditions:     map[string]RawValue{"cooldown_ready": rawString("*")},
				Reactions:      map[string]RawValue{"at_target": {Literal: true}},
				Weight:         2,
				Classification: "execution",
			},
		},
	}
	cat, err := BuildCatalog(cfg)
	require.NoError(t, err)
	action, ok := cat.Get("move")
	require.True(t, ok)
	assert.Equal(t, state.Unspecified(), action.Preconditions["cooldown_ready"])
	assert.Equal(t, 2.0, action.Weight)
}

func TestBuildGoal_UnknownTemplate(t *testing.T) {
	cfg := &GoalTemplatesConfig{Goals: map[string]map[string]RawValue{}}
	_, err := BuildGoal(cfg, "missing")
	assert.Error(t, err)
}
