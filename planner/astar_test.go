package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/state"
)

func actionFixtures() []catalog.Action {
	return []catalog.Action{
		{
			Name:          "move",
			Preconditions: map[string]state.Value{"cooldown_ready": state.Bool(true)},
			Effects:       map[string]state.Value{"at_target": state.Bool(true)},
			Weight:        2,
		},
		{
			Name: "fight_monster",
			Preconditions: map[string]state.Value{
				"cooldown_ready": state.Bool(true),
				"at_target":      state.Bool(true),
			},
			Effects: map[string]state.Value{"monster_defeated": state.Bool(true)},
			Weight:  3,
		},
	}
}

func TestSearch_FindsShortestPlan(t *testing.T) {
	start := map[string]state.Value{
		"cooldown_ready":   state.Bool(true),
		"at_target":        state.Bool(false),
		"monster_defeated": state.Bool(false),
	}
	g := goal.Goal{"monster_defeated": state.Bool(true)}

	plan, err := Search(start, g, actionFixtures(), Options{})
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "move", plan[0].Action)
	assert.Equal(t, "fight_monster", plan[1].Action)
	assert.Equal(t, 2.0, plan[0].Cost)
	assert.Equal(t, 3.0, plan[1].Cost)
	assert.Equal(t, 5.0, plan.TotalCost())
}

func TestSearch_AlreadySatisfiedReturnsEmptyPlan(t *testing.T) {
	start := map[string]state.Value{"monster_defeated": state.Bool(true)}
	g := goal.Goal{"monster_defeated": state.Bool(true)}

	plan, err := Search(start, g, actionFixtures(), Options{})
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestSearch_NoPlanAvailable(t *testing.T) {
	start := map[string]state.Value{"cooldown_ready": state.Bool(false)}
	g := goal.Goal{"monster_defeated": state.Bool(true)}

	_, err := Search(start, g, actionFixtures(), Options{})
	assert.ErrorIs(t, err, agenterr.ErrNoPlanAvailable)
}

func TestSearch_IterationCapSurfacesOverflow(t *testing.T) {
	// The root expands into one successor (move), so the open set is still
	// non-empty when the one-expansion cap is reached.
	start := map[string]state.Value{
		"cooldown_ready": state.Bool(true),
		"at_target":      state.Bool(false),
	}
	g := goal.Goal{"monster_defeated": state.Bool(true)}

	_, err := Search(start, g, actionFixtures(), Options{MaxIterations: 1})
	assert.ErrorIs(t, err, agenterr.ErrSearchOverflow)
}

func TestSearch_RespectsPreconditions(t *testing.T) {
	// fight_monster requires at_target; without move available the only
	// action, the goal is unreachable even though the catalog isn't empty.
	start := map[string]state.Value{
		"cooldown_ready": state.Bool(true),
		"at_target":      state.Bool(false),
	}
	g := goal.Goal{"monster_defeated": state.Bool(true)}
	onlyFight := []catalog.Action{actionFixtures()[1]}

	_, err := Search(start, g, onlyFight, Options{})
	assert.ErrorIs(t, err, agenterr.ErrNoPlanAvailable)
}

func TestSearch_PicksCheapestOfTwoRoutes(t *testing.T) {
	actions := []catalog.Action{
		{
			Name:    "direct",
			Effects: map[string]state.Value{"done": state.Bool(true)},
			Weight:  1,
		},
		{
			Name:    "detour_a",
			Effects: map[string]state.Value{"midpoint": state.Bool(true)},
			Weight:  5,
		},
		{
			Name:          "detour_b",
			Preconditions: map[string]state.Value{"midpoint": state.Bool(true)},
			Effects:       map[string]state.Value{"done": state.Bool(true)},
			Weight:        5,
		},
	}
	start := map[string]state.Value{"done": state.Bool(false), "midpoint": state.Bool(false)}
	g := goal.Goal{"done": state.Bool(true)}

	plan, err := Search(start, g, actions, Options{})
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "direct", plan[0].Action, "the single cheap action beats the two-step detour")
}

func TestSearch_TieBreaksByActionNameAscending(t *testing.T) {
	// Two equal-weight actions both satisfy the goal directly; the
	// deterministic tie-break (action name ascending) must always pick the
	// same one so replans over identical states are reproducible.
	actions := []catalog.Action{
		{Name: "zzz_option", Effects: map[string]state.Value{"done": state.Bool(true)}, Weight: 1},
		{Name: "aaa_option", Effects: map[string]state.Value{"done": state.Bool(true)}, Weight: 1},
	}
	start := map[string]state.Value{"done": state.Bool(false)}
	g := goal.Goal{"done": state.Bool(true)}

	plan, err := Search(start, g, actions, Options{})
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "aaa_option", plan[0].Action)
}
