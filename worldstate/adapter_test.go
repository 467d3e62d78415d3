package worldstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/state"
)

func TestFlatten_PopulatesDeclaredDefaults(t *testing.T) {
	defaults := Defaults{"cooldown_ready": state.Bool(true)}
	flat := Flatten(nil, defaults, goal.Goal{}, nil)
	assert.Equal(t, state.Bool(true), flat["cooldown_ready"])
}

func TestFlatten_InjectsUnspecifiedForReferencedKeys(t *testing.T) {
	actions := []catalog.Action{{
		Preconditions: map[string]state.Value{"at_workshop": state.Bool(true)},
	}}
	flat := Flatten(nil, Defaults{}, goal.Goal{}, actions)
	assert.Equal(t, state.Unspecified(), flat["at_workshop"])
}

func TestFlatten_RuntimeOverlaysDefaults(t *testing.T) {
	defaults := Defaults{"hp": state.Int(100)}
	runtime := map[string]state.Value{"hp": state.Int(42)}
	flat := Flatten(runtime, defaults, goal.Goal{}, nil)
	assert.Equal(t, state.Int(42), flat["hp"])
}

func TestFlatten_DeepMergesRecords(t *testing.T) {
	defaults := Defaults{"current": state.Record(map[string]state.Value{
		"x": state.Int(0), "y": state.Int(0),
	})}
	runtime := map[string]state.Value{"current": state.Record(map[string]state.Value{
		"x": state.Int(5),
	})}
	flat := Flatten(runtime, defaults, goal.Goal{}, nil)
	assert.Equal(t, state.Int(5), flat["current"].Record["x"])
	assert.Equal(t, state.Int(0), flat["current"].Record["y"], "sibling default must survive a partial runtime update")
}

func TestMinimalGoal_OnlyNamesSuppliedKeys(t *testing.T) {
	g := MinimalGoal(map[string]state.Value{"weapon_equipped": state.Bool(true)})
	assert.Len(t, g, 1)
	assert.Equal(t, state.Bool(true), g["weapon_equipped"])
}

func TestApplyEffectsBack_SkipsUnspecified(t *testing.T) {
	runtime := map[string]state.Value{"hp": state.Int(10)}
	effects := map[string]state.Value{"hp": state.Unspecified(), "monster_defeated": state.Bool(true)}
	next := ApplyEffectsBack(runtime, effects)
	assert.Equal(t, state.Int(10), next["hp"])
	assert.Equal(t, state.Bool(true), next["monster_defeated"])
}

func TestApplyEffectsBack_DeepMergesRecords(t *testing.T) {
	runtime := map[string]state.Value{"current": state.Record(map[string]state.Value{
		"x": state.Int(1), "y": state.Int(2),
	})}
	effects := map[string]state.Value{"current": state.Record(map[string]state.Value{"x": state.Int(9)})}
	next := ApplyEffectsBack(runtime, effects)
	assert.Equal(t, state.Int(9), next["current"].Record["x"])
	assert.Equal(t, state.Int(2), next["current"].Record["y"])
}
