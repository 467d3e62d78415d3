// Package worldstate implements the World-State Adapter: the translation
// layer between the agent's runtime state and the flat, string-keyed state
// the planner consumes (spec §4.7).
package worldstate

import (
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/state"
)

// Defaults is the declared default value for every state key the catalog
// recognizes, as loaded from the state-defaults configuration file. Keys
// absent here fall back to state.Unspecified() when flattened.
type Defaults map[string]state.Value

// Flatten builds the complete start state the planner should search from:
// the union of keys referenced by goal, every action's preconditions and
// effects, and the supplied defaults, populated with declared defaults and
// then overlaid with live runtime values. Nested-record-valued keys are
// deep-merged rather than overwritten, so a runtime record that only
// updates one sub-key doesn't erase the declared defaults for its
// siblings (spec §4.7 and design note "Nested record handling").
//
// The invariant this establishes: the returned state's key set is a
// superset of (goal keys) ∪ (every action's precondition keys) ∪ (every
// action's effect keys), so the planner never has to treat a
// genuinely-declared key as unspecified merely because runtime state
// hadn't populated it yet.
func Flatten(runtime map[string]state.Value, defaults Defaults, g goal.Goal, actions []catalog.Action) map[string]state.Value {
	flat := make(map[string]state.Value, len(defaults)+len(runtime))

	for key, def := range defaults {
		flat[key] = def
	}

	required := referencedKeys(g, actions)
	for key := range required {
		if _, ok := flat[key]; !ok {
			flat[key] = state.Unspecified()
		}
	}

	for key, value := range runtime {
		if existing, ok := flat[key]; ok && existing.Kind == state.KindRecord && value.Kind == state.KindRecord {
			flat[key] = deepMerge(existing, value)
			continue
		}
		flat[key] = value
	}

	return flat
}

// MinimalGoal builds the goal the planner should search toward: only the
// keys the caller supplied, since anything absent is left unspecified and
// the planner never checks it (spec §4.7 "Minimal goal").
func MinimalGoal(wanted map[string]state.Value) goal.Goal {
	g := make(goal.Goal, len(wanted))
	for k, v := range wanted {
		g[k] = v
	}
	return g
}

// ApplyEffectsBack merges an executed action's declared effects into
// runtime state, preserving nested structure via the same deep-merge rule
// Flatten uses (spec §4.7 "Apply-plan-effects-back").
func ApplyEffectsBack(runtime map[string]state.Value, effects map[string]state.Value) map[string]state.Value {
	next := make(map[string]state.Value, len(runtime))
	for k, v := range runtime {
		next[k] = v
	}
	for key, value := range effects {
		if value.Kind == state.KindUnspecified {
			continue
		}
		if existing, ok := next[key]; ok && existing.Kind == state.KindRecord && value.Kind == state.KindRecord {
			next[key] = deepMerge(existing, value)
			continue
		}
		next[key] = value
	}
	return next
}

func deepMerge(base, overlay state.Value) state.Value {
	if base.Kind != state.KindRecord || overlay.Kind != state.KindRecord {
		return overlay
	}
	merged := make(map[string]state.Value, len(base.Record)+len(overlay.Record))
	for k, v := range base.Record {
		merged[k] = v
	}
	for k, v := range overlay.Record {
		if existing, ok := merged[k]; ok && existing.Kind == state.KindRecord && v.Kind == state.KindRecord {
			merged[k] = deepMerge(existing, v)
			continue
		}
		merged[k] = v
	}
	return state.Record(merged)
}

func referencedKeys(g goal.Goal, actions []catalog.Action) map[string]struct{} {
	keys := make(map[string]struct{})
	for k := range g {
		keys[k] = struct{}{}
	}
	for _, a := range actions {
		for k := range a.Preconditions {
			keys[k] = struct{}{}
		}
		for k := range a.Effects {
			keys[k] = struct{}{}
		}
	}
	return keys
}
