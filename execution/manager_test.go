package execution

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/knowledge"
	"github.com/goaplanner/agent/learning"
	"github.com/goaplanner/agent/state"
	"github.com/goaplanner/agent/worldstate"
)

// fakeObserver is a minimal in-process Observer: no caching policy, no
// API fallback, just a mutex-guarded map that Update overwrites — enough
// to drive the manager's develop/execute loop deterministically in tests.
type fakeObserver struct {
	mu    sync.Mutex
	state map[string]state.Value
	ready bool
}

func (f *fakeObserver) Observe(ctx context.Context, character string, forceRefresh bool) (ObservedState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make(map[string]state.Value, len(f.state))
	for k, v := range f.state {
		cp[k] = v
	}
	return ObservedState{State: cp, Cooldown: CooldownInfo{Ready: f.ready}}, nil
}

func (f *fakeObserver) Update(ctx context.Context, character string, merged map[string]state.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = merged
	return nil
}

// fakeExecutor always succeeds, letting Phase II's own
// worldstate.ApplyEffectsBack derive the resulting state from the
// catalog action's declared effects.
type fakeExecutor struct{}

func (fakeExecutor) Execute(ctx context.Context, character string, action catalog.Action, current map[string]state.Value) Outcome {
	return Outcome{Success: true}
}

// coordinateRecoveryExecutor scripts the scenario GameExecutor's move
// handling guards against: a bare "move" has no known target, so it
// fails with ErrCoordinateUnknown, forcing a discovery recovery step
// before a targeted move_to_* instance (stamped in by the planner's
// action factory once the workshop location is known) can succeed.
type coordinateRecoveryExecutor struct{}

func (coordinateRecoveryExecutor) Execute(ctx context.Context, character string, action catalog.Action, current map[string]state.Value) Outcome {
	switch {
	case action.Name == "move":
		return Outcome{Success: false, Err: agenterr.New("test", "execution", agenterr.ErrCoordinateUnknown)}
	case strings.HasPrefix(action.Name, "move_to_workshop:"):
		return Outcome{Success: true}
	case action.Name == "find_correct_workshop":
		return Outcome{
			Success: true,
			Learning: learning.Response{
				ActionName:   learning.ActionFindCorrectWorkshop,
				WorkshopType: "weaponcrafting",
				WorkshopX:    5,
				WorkshopY:    9,
			},
		}
	default:
		return Outcome{Success: true}
	}
}

func buildCoordinateRecoveryCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.AddCondition("move", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddReaction("move", "at_target", state.Bool(true)))
	require.NoError(t, c.SetWeight("move", 2))

	require.NoError(t, c.AddCondition("find_correct_workshop", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddReaction("find_correct_workshop", "workshop_location_known", state.Bool(true)))
	require.NoError(t, c.SetWeight("find_correct_workshop", 1))
	require.NoError(t, c.SetClassification("find_correct_workshop", catalog.Discovery))

	require.NoError(t, c.AddCondition("fight_monster", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddCondition("fight_monster", "at_target", state.Bool(true)))
	require.NoError(t, c.AddReaction("fight_monster", "monster_defeated", state.Bool(true)))
	require.NoError(t, c.SetWeight("fight_monster", 3))
	return c
}

func TestManager_RunOnce_CoordinateUnknownRecoversViaDiscoveryThenParameterizedMove(t *testing.T) {
	observer := &fakeObserver{
		ready: true,
		state: map[string]state.Value{
			"cooldown_ready":          state.Bool(true),
			"at_target":               state.Bool(false),
			"monster_defeated":        state.Bool(false),
			"workshop_location_known": state.Bool(false),
		},
	}
	store := knowledge.New(knowledge.NewInMemoryBackend(), nil)
	m := New(Config{
		Character: "hero",
		Executor:  coordinateRecoveryExecutor{},
		Observer:  observer,
		Catalog:   buildCoordinateRecoveryCatalog(t),
		Defaults:  worldstate.Defaults{},
		Store:     store,
		Learner:   learning.New(store, nil),
	})
	m.SetGoal(map[string]state.Value{"monster_defeated": state.Bool(true)})

	status, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusDoneOK, status)

	w, ok := store.WorkshopLocation(context.Background(), "weaponcrafting")
	require.True(t, ok, "the discovery action's outcome should have been learned")
	assert.Equal(t, 5, w.X)
	assert.Equal(t, 9, w.Y)
}

func buildTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.AddCondition("move", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddReaction("move", "at_target", state.Bool(true)))
	require.NoError(t, c.SetWeight("move", 2))

	require.NoError(t, c.AddCondition("fight_monster", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddCondition("fight_monster", "at_target", state.Bool(true)))
	require.NoError(t, c.AddReaction("fight_monster", "monster_defeated", state.Bool(true)))
	require.NoError(t, c.SetWeight("fight_monster", 3))
	return c
}

func newTestManager(t *testing.T, observer *fakeObserver) *Manager {
	t.Helper()
	store := knowledge.New(knowledge.NewInMemoryBackend(), nil)
	learner := learning.New(store, nil)
	return New(Config{
		Character: "hero",
		Executor:  fakeExecutor{},
		Observer:  observer,
		Catalog:   buildTestCatalog(t),
		Defaults:  worldstate.Defaults{},
		Store:     store,
		Learner:   learner,
	})
}

func TestManager_RunOnce_DrivesPlanToCompletion(t *testing.T) {
	observer := &fakeObserver{
		ready: true,
		state: map[string]state.Value{
			"cooldown_ready":   state.Bool(true),
			"at_target":        state.Bool(false),
			"monster_defeated": state.Bool(false),
		},
	}
	m := newTestManager(t, observer)
	m.SetGoal(map[string]state.Value{"monster_defeated": state.Bool(true)})

	status, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusDoneOK, status)

	report := m.GetStatus()
	assert.Equal(t, StatusDoneOK, report.Status)
	assert.Equal(t, 2, report.Stats.ActionsExecuted)
}

func TestManager_RunOnce_AlreadySatisfiedSkipsPlanning(t *testing.T) {
	observer := &fakeObserver{
		ready: true,
		state: map[string]state.Value{"monster_defeated": state.Bool(true)},
	}
	m := newTestManager(t, observer)
	m.SetGoal(map[string]state.Value{"monster_defeated": state.Bool(true)})

	status, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusDoneOK, status)
	assert.Equal(t, 0, m.GetStatus().Stats.ActionsExecuted)
}

func TestManager_RunOnce_NoGoalSetFails(t *testing.T) {
	observer := &fakeObserver{ready: true, state: map[string]state.Value{}}
	m := newTestManager(t, observer)

	status, err := m.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StatusDoneFail, status)
}

func TestManager_StartStop_IsIdempotentAndReturnsPromptly(t *testing.T) {
	observer := &fakeObserver{
		ready: true,
		state: map[string]state.Value{"monster_defeated": state.Bool(true)},
	}
	m := newTestManager(t, observer)
	m.SetGoal(map[string]state.Value{"monster_defeated": state.Bool(true)})

	ctx := context.Background()
	m.Start(ctx)
	m.Start(ctx) // second call must be a no-op, not a second goroutine
	m.Stop()
	m.Stop() // idempotent
}
