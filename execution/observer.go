package execution

import (
	"context"
	"sync"
	"time"

	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/gameclient"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/knowledge"
	"github.com/goaplanner/agent/state"
	"github.com/goaplanner/agent/worldstate"
)

// CachingObserver is the default Observer: cache-first against an
// in-process snapshot, falling back to the game client on a cold cache or
// forced refresh (spec §4.6 Phase I step 1: "Observe current state
// (cache-first, API fallback)"). It also owns the World-State Adapter's
// flatten/merge responsibility, since that's inseparable from "what state
// do we hand the rest of the manager this iteration".
type CachingObserver struct {
	client   gameclient.Client
	store    *knowledge.Store
	defaults worldstate.Defaults
	goal     goal.Goal
	actions  []catalog.Action

	mu       sync.RWMutex
	cached   map[string]state.Value
	cachedAt time.Time
}

// NewCachingObserver returns an Observer backed by client, caching merged
// state in-process and durably via store's character cache. goal and
// actions seed Flatten's referenced-key union (spec §4.7); they may be
// updated by calling SetPlanningContext if the goal changes.
func NewCachingObserver(client gameclient.Client, store *knowledge.Store, defaults worldstate.Defaults, g goal.Goal, actions []catalog.Action) *CachingObserver {
	return &CachingObserver{client: client, store: store, defaults: defaults, goal: g, actions: actions}
}

// SetPlanningContext updates the goal/action-set Flatten uses to decide
// which keys must be present. Manager.SetGoal does not call it; the run
// command calls it next to SetGoal when it installs the goal.
func (o *CachingObserver) SetPlanningContext(g goal.Goal, actions []catalog.Action) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.goal = g
	o.actions = actions
}

func (o *CachingObserver) Observe(ctx context.Context, character string, forceRefresh bool) (ObservedState, error) {
	o.mu.RLock()
	cached := o.cached
	hasCache := cached != nil
	o.mu.RUnlock()

	if !forceRefresh && hasCache {
		return o.toObservedState(cached), nil
	}

	snap, err := o.client.GetCharacter(ctx, character)
	if err != nil {
		return ObservedState{}, err
	}
	o.store.RecordCharacterSnapshot(ctx, snap)

	runtime := snapshotToState(snap)
	o.mu.RLock()
	flat := worldstate.Flatten(runtime, o.defaults, o.goal, o.actions)
	o.mu.RUnlock()

	o.mu.Lock()
	o.cached = flat
	o.cachedAt = time.Now()
	o.mu.Unlock()

	return o.toObservedStateWithSnapshot(flat, snap), nil
}

func (o *CachingObserver) Update(ctx context.Context, character string, merged map[string]state.Value) error {
	o.mu.Lock()
	o.cached = merged
	o.cachedAt = time.Now()
	o.mu.Unlock()
	return nil
}

func (o *CachingObserver) toObservedState(flat map[string]state.Value) ObservedState {
	return ObservedState{State: flat, Cooldown: cooldownInfoFromState(flat)}
}

func (o *CachingObserver) toObservedStateWithSnapshot(flat map[string]state.Value, snap gameclient.CharacterSnapshot) ObservedState {
	obs := o.toObservedState(flat)
	obs.Snapshot = snap
	return obs
}

// cooldownInfoFromState derives readiness from the flattened state's
// cooldown_ready key, which Flatten/ApplyEffectsBack keep current as
// actions report cooldowns (spec §3 invariant: "cooldown_ready is false
// whenever the latest action response supplied a non-zero cooldown that
// has not yet elapsed").
func cooldownInfoFromState(flat map[string]state.Value) CooldownInfo {
	ready := true
	if v, ok := flat["cooldown_ready"]; ok && v.Kind == state.KindBool {
		ready = v.Bool
	}
	remaining := 0.0
	if v, ok := flat["cooldown_remaining_seconds"]; ok && v.IsNumeric() {
		remaining = v.Num
	}
	return CooldownInfo{Ready: ready, RemainingSeconds: remaining}
}

func snapshotToState(snap gameclient.CharacterSnapshot) map[string]state.Value {
	skills := make(map[string]state.Value, len(snap.Skills))
	for k, v := range snap.Skills {
		skills[k] = state.Int(v)
	}
	equipment := make(map[string]state.Value, len(snap.EquipmentSlots))
	for k, v := range snap.EquipmentSlots {
		equipment[k] = state.String(v)
	}
	inventory := make(map[string]state.Value, len(snap.InventoryItems))
	for k, v := range snap.InventoryItems {
		inventory[k] = state.Int(v)
	}

	ready, remaining := readinessFromExpiration(snap.CooldownExpiration)

	return map[string]state.Value{
		"character_level": state.Int(snap.Level),
		"character_xp":    state.Int(snap.XP),
		"hp_current":      state.Int(snap.HPCurrent),
		"hp_max":          state.Int(snap.HPMax),
		"current": state.Record(map[string]state.Value{
			"x": state.Int(snap.X),
			"y": state.Int(snap.Y),
		}),
		"skills":                     state.Record(skills),
		"equipment":                  state.Record(equipment),
		"inventory":                  state.Record(inventory),
		"inventory_space_used":       state.Int(snap.InventorySpaceUsed),
		"inventory_capacity":         state.Int(snap.InventoryCapacity),
		"cooldown_ready":             state.Bool(ready),
		"cooldown_remaining_seconds": state.Float(remaining),
	}
}

func readinessFromExpiration(expiration string) (ready bool, remainingSeconds float64) {
	if expiration == "" {
		return true, 0
	}
	t, err := time.Parse(time.RFC3339, expiration)
	if err != nil {
		// Malformed timestamp: fall back to ready, per cooldown.Record's
		// own IsReady fallback rule (spec §3).
		return true, 0
	}
	remaining := time.Until(t)
	if remaining <= 0 {
		return true, 0
	}
	return false, remaining.Seconds()
}
