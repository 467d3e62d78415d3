// Package goal implements the Goal Satisfaction Checker: a recursive
// subset match of a partial goal against current state, shared verbatim
// between the Execution Manager's "are we done?" check and the A*
// planner's termination condition (spec §4.8).
package goal

import "github.com/goaplanner/agent/state"

// Goal is a partial world state: a mapping from keys to desired values,
// which may be literals, nested partial states (state.KindRecord), or
// threshold expressions.
type Goal map[string]state.Value

// Satisfied reports whether every key-path in g is satisfied in current,
// recursively. A key missing from current fails (treated as state.Null()
// on the candidate side); extra keys in current are ignored. This is
// exactly state.Matches(state.Record(current), state.Record(g)) applied
// at the top level, spelled out here because goals and states are
// map[string]state.Value rather than state.Value themselves.
func Satisfied(current map[string]state.Value, g Goal) bool {
	for key, want := range g {
		have, ok := current[key]
		if !ok {
			have = state.Null()
		}
		if !state.Matches(have, want) {
			return false
		}
	}
	return true
}
