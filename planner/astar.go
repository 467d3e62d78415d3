package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/state"
)

// DefaultMaxIterations is the expansion-count safety bound from spec §4.2:
// hitting it surfaces as SearchOverflow rather than running unbounded.
const DefaultMaxIterations = 10000

// Step is one element of a returned Plan: the action name and its
// incremental cost contribution (spec §3: "Each element carries its
// incremental cost contribution").
type Step struct {
	Action string
	Cost   float64
}

// Plan is the ordered, immutable sequence the planner returns. A plan may
// share a prefix with a later plan produced by the Execution Manager's
// selective replanning, but Plan itself is never mutated once returned.
type Plan []Step

// TotalCost sums every step's cost contribution.
func (p Plan) TotalCost() float64 {
	var total float64
	for _, s := range p {
		total += s.Cost
	}
	return total
}

// Options tunes a single Search call. The zero value uses
// DefaultMaxIterations.
type Options struct {
	MaxIterations int
}

// Search runs classical A* from start to goal over actions, returning an
// ordered Plan. Returns ErrNoPlanAvailable when the open set empties
// before the goal is reached, or ErrSearchOverflow when MaxIterations
// expansions have occurred without success (spec §4.2). Both are
// surfaced identically to the Execution Manager's plan-development phase,
// which only distinguishes them in diagnostics — so both embed the
// expansion count for that purpose.
func Search(start map[string]state.Value, g goal.Goal, actions []catalog.Action, opts Options) (Plan, error) {
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	sortedActions := make([]catalog.Action, len(actions))
	copy(sortedActions, actions)
	sort.Slice(sortedActions, func(i, j int) bool { return sortedActions[i].Name < sortedActions[j].Name })

	a := newArena()
	rootID := a.add(node{state: start, g: 0, h: heuristic(start, g), parent: -1, viaAction: ""})

	open := newOpenQueue(a)
	open.push(rootID)

	// best[key] maps a (state, last-action) identity to the arena id
	// currently known for it, whether still open or already closed — this
	// is what lets a cheaper rediscovery reopen a closed node instead of
	// being silently dropped (spec §4.2 "Re-opening", design note 1: use
	// the classical rule, not the source's buggy dict-as-key branch).
	best := map[string]int{key(start, ""): rootID}

	iterations := 0
	for open.Len() > 0 {
		if iterations >= maxIter {
			return nil, agenterr.New("Search", "planner", agenterr.ErrSearchOverflow).
				WithID(fmt.Sprintf("iterations=%d", iterations))
		}
		iterations++

		currentID := open.pop()
		current := a.get(currentID)
		if current.closed {
			// Defensive: never expand a node twice. A reopen clears closed
			// before pushing the same id again, so a live entry is open here.
			continue
		}
		current.closed = true

		if goal.Satisfied(current.state, g) {
			return reconstruct(a, currentID), nil
		}

		for _, action := range sortedActions {
			if !action.Matches(current.state) {
				continue
			}
			successorState := action.Apply(current.state)
			successorKey := key(successorState, action.Name)
			tentativeG := current.g + action.Weight

			if existingID, ok := best[successorKey]; ok {
				existing := a.get(existingID)
				if tentativeG >= existing.g {
					continue
				}
				// Re-open: a cheaper path to an already-known node. Update
				// in place and restore it to the open set if it had been
				// closed.
				existing.g = tentativeG
				existing.parent = currentID
				existing.viaAction = action.Name
				if existing.closed {
					existing.closed = false
					open.push(existingID)
				} else {
					open.fix()
				}
				continue
			}

			successorID := a.add(node{
				state:     successorState,
				g:         tentativeG,
				h:         heuristic(successorState, g),
				parent:    currentID,
				viaAction: action.Name,
			})
			best[successorKey] = successorID
			open.push(successorID)
		}
	}

	return nil, agenterr.New("Search", "planner", agenterr.ErrNoPlanAvailable).
		WithID(fmt.Sprintf("iterations=%d", iterations))
}

func heuristic(current map[string]state.Value, g goal.Goal) float64 {
	return float64(state.Distance(current, map[string]state.Value(g)))
}

// key canonicalizes (state, last-action-name) for open/closed identity
// (spec §4.2: "Classical A* over nodes keyed by (state, last-action-name)").
func key(s map[string]state.Value, lastAction string) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(lastAction)
	b.WriteByte('|')
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s[k].String())
		b.WriteByte(';')
	}
	return b.String()
}

func reconstruct(a *arena, goalID int) Plan {
	var reversed Plan
	for id := goalID; a.get(id).parent != -1; id = a.get(id).parent {
		n := a.get(id)
		parent := a.get(n.parent)
		// cost contribution = g(n) - g(parent)
		reversed = append(reversed, Step{Action: n.viaAction, Cost: n.g - parent.g})
	}
	plan := make(Plan, len(reversed))
	for i, step := range reversed {
		plan[len(reversed)-1-i] = step
	}
	return plan
}
