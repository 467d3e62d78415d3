// Package catalog implements the Action Catalog: a registry of named
// actions, each carrying preconditions, effects, a planning weight, and a
// classification the Execution Manager and Outcome Learner dispatch on.
package catalog

import "github.com/goaplanner/agent/state"

// Classification distinguishes actions whose value is the state change they
// enact from actions whose value is the information their response reveals.
type Classification int

const (
	// Execution actions mutate world state but yield no new knowledge.
	Execution Classification = iota
	// Discovery actions may reveal information that invalidates remaining
	// plan steps, triggering the Outcome Learner's replan policy.
	Discovery
)

func (c Classification) String() string {
	if c == Discovery {
		return "discovery"
	}
	return "execution"
}

// Action is an immutable record consumed by the planner. The catalog owns
// the canonical copy; the planner receives a by-value snapshot per plan
// call (see Catalog.Snapshot), so mutating a snapshot never affects the
// catalog or any other in-flight search.
type Action struct {
	Name           string
	Preconditions  map[string]state.Value
	Effects        map[string]state.Value
	Weight         float64
	Classification Classification
}

// Clone returns a deep copy of the action, safe to hand to a search arena
// that may overwrite successor states built from it.
func (a Action) Clone() Action {
	preconds := make(map[string]state.Value, len(a.Preconditions))
	for k, v := range a.Preconditions {
		preconds[k] = v
	}
	effects := make(map[string]state.Value, len(a.Effects))
	for k, v := range a.Effects {
		effects[k] = v
	}
	return Action{
		Name:           a.Name,
		Preconditions:  preconds,
		Effects:        effects,
		Weight:         a.Weight,
		Classification: a.Classification,
	}
}

// Matches reports whether every precondition of a is satisfied by current.
func (a Action) Matches(current map[string]state.Value) bool {
	for key, required := range a.Preconditions {
		candidate, ok := current[key]
		if !ok {
			candidate = state.Unspecified()
		}
		if !state.Matches(candidate, required) {
			return false
		}
	}
	return true
}

// Apply returns a successor state: current overwritten with every
// non-unspecified effect key. Effect keys carrying the unspecified
// sentinel leave the corresponding state key unchanged, per spec §4.2.
func (a Action) Apply(current map[string]state.Value) map[string]state.Value {
	next := make(map[string]state.Value, len(current))
	for k, v := range current {
		next[k] = v
	}
	for key, value := range a.Effects {
		if value.Kind == state.KindUnspecified {
			continue
		}
		next[key] = value
	}
	return next
}
