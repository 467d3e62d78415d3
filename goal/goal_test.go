package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goaplanner/agent/state"
)

func TestSatisfied_EmptyGoalAlwaysSatisfied(t *testing.T) {
	assert.True(t, Satisfied(map[string]state.Value{}, Goal{}))
}

func TestSatisfied_MissingKeyTreatedAsNull(t *testing.T) {
	g := Goal{"weapon_equipped": state.NotNull()}
	assert.False(t, Satisfied(map[string]state.Value{}, g))
}

func TestSatisfied_ExtraKeysIgnored(t *testing.T) {
	current := map[string]state.Value{"weapon_equipped": state.Bool(true), "hp": state.Int(50)}
	g := Goal{"weapon_equipped": state.Bool(true)}
	assert.True(t, Satisfied(current, g))
}

func TestSatisfied_Threshold(t *testing.T) {
	g := Goal{"character_level": state.GTE(5)}
	assert.True(t, Satisfied(map[string]state.Value{"character_level": state.Int(5)}, g))
	assert.False(t, Satisfied(map[string]state.Value{"character_level": state.Int(4)}, g))
}
