package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/state"
)

func TestCatalog_AddConditionAndReaction(t *testing.T) {
	c := New()
	require.NoError(t, c.AddCondition("move", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddReaction("move", "at_target", state.Bool(true)))

	action, ok := c.Get("move")
	require.True(t, ok)
	assert.Equal(t, state.Bool(true), action.Preconditions["cooldown_ready"])
	assert.Equal(t, state.Bool(true), action.Effects["at_target"])
	assert.Equal(t, 1.0, action.Weight, "weight defaults to 1 on first mention")
}

func TestCatalog_OrphanReaction(t *testing.T) {
	c := New()
	err := c.AddReaction("never_declared", "x", state.Bool(true))
	assert.ErrorIs(t, err, agenterr.ErrOrphanReaction)
}

func TestCatalog_InvalidWeight(t *testing.T) {
	c := New()
	require.NoError(t, c.AddCondition("move", "a", state.Bool(true)))
	err := c.SetWeight("move", 0)
	assert.ErrorIs(t, err, agenterr.ErrInvalidWeight)
}

func TestCatalog_FrozenRejectsMutation(t *testing.T) {
	c := New()
	require.NoError(t, c.AddCondition("move", "a", state.Bool(true)))
	c.Freeze()

	assert.ErrorIs(t, c.AddCondition("move", "b", state.Bool(true)), agenterr.ErrInvalidConfiguration)
	assert.ErrorIs(t, c.AddReaction("move", "b", state.Bool(true)), agenterr.ErrInvalidConfiguration)
	assert.ErrorIs(t, c.SetWeight("move", 2), agenterr.ErrInvalidConfiguration)
	assert.ErrorIs(t, c.SetClassification("move", Discovery), agenterr.ErrInvalidConfiguration)
}

func TestCatalog_SnapshotIsSortedAndIndependent(t *testing.T) {
	c := New()
	require.NoError(t, c.AddCondition("zebra", "a", state.Bool(true)))
	require.NoError(t, c.AddCondition("apple", "a", state.Bool(true)))
	c.Freeze()

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "apple", snap[0].Name)
	assert.Equal(t, "zebra", snap[1].Name)

	snap[0].Preconditions["a"] = state.Bool(false)
	action, _ := c.Get("apple")
	assert.Equal(t, state.Bool(true), action.Preconditions["a"], "snapshot mutation must not affect the catalog")
}

func TestCatalog_Filter(t *testing.T) {
	c := New()
	require.NoError(t, c.AddCondition("fight", "a", state.Bool(true)))
	require.NoError(t, c.SetClassification("fight", Execution))
	require.NoError(t, c.AddCondition("explore", "a", state.Bool(true)))
	require.NoError(t, c.SetClassification("explore", Discovery))
	c.Freeze()

	executionOnly := c.Filter(func(a Action) bool { return a.Classification == Execution })
	assert.Equal(t, []string{"fight"}, executionOnly.Names())
}

func TestAction_Apply(t *testing.T) {
	a := Action{
		Effects: map[string]state.Value{
			"at_target":  state.Bool(true),
			"irrelevant": state.Unspecified(),
		},
	}
	current := map[string]state.Value{"at_target": state.Bool(false), "other": state.Int(1)}
	next := a.Apply(current)

	assert.Equal(t, state.Bool(true), next["at_target"])
	assert.Equal(t, state.Int(1), next["other"])
	_, present := next["irrelevant"]
	assert.False(t, present, "unspecified effect values are never written")
}

func TestAction_Matches(t *testing.T) {
	a := Action{Preconditions: map[string]state.Value{"cooldown_ready": state.Bool(true)}}
	assert.True(t, a.Matches(map[string]state.Value{"cooldown_ready": state.Bool(true)}))
	assert.False(t, a.Matches(map[string]state.Value{"cooldown_ready": state.Bool(false)}))
}

func TestAction_CloneIsDeep(t *testing.T) {
	a := Action{Preconditions: map[string]state.Value{"x": state.Bool(true)}}
	clone := a.Clone()
	clone.Preconditions["x"] = state.Bool(false)
	assert.Equal(t, state.Bool(true), a.Preconditions["x"])
}
