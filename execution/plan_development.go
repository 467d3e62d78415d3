package execution

import (
	"context"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/cooldown"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/planner"
	"github.com/goaplanner/agent/state"
)

// developPlan implements Phase I (spec §4.6): apply the cooldown-aware
// filter, try the knowledge-based planner first, fall back to the
// discovery-biased planner, and fail with a diagnostic if both come up
// empty while the character is ready. Scenario C (spec §8) is this path
// when cd.Ready is false: the filter drops every cooldown_ready-gated
// action, so neither sub-planner can find fight; developPlan then returns
// an empty plan, and Phase II inserts a wait before replanning with the
// full catalog.
func (m *Manager) developPlan(ctx context.Context, current map[string]state.Value, g goal.Goal, full *catalog.Catalog, cd CooldownInfo) (planner.Plan, error) {
	if goal.Satisfied(current, g) {
		return planner.Plan{}, nil
	}

	available := m.cooldownFilter.Apply(full, toCooldownRecord(cd))
	actions := m.withParameterizedMoves(ctx, available)
	for _, a := range actions {
		m.actionIndex[a.Name] = a
	}

	knowledgeOnly := filterExecutionActions(actions)
	if plan, err := planner.Search(current, g, knowledgeOnly, planner.Options{MaxIterations: m.maxSearchIterations}); err == nil {
		m.logger.Debug("knowledge-based planner produced a plan", map[string]interface{}{"steps": len(plan)})
		return plan, nil
	}

	plan, err := planner.Search(current, g, actions, planner.Options{MaxIterations: m.maxSearchIterations})
	if err != nil {
		if !cd.Ready {
			// Scenario C: leave the wait and the replan to Phase II.
			return planner.Plan{}, nil
		}
		return nil, agenterr.New("developPlan", "planner", agenterr.ErrGoalUnreachable).WithID(err.Error())
	}
	m.logger.Debug("discovery-biased planner produced a plan", map[string]interface{}{"steps": len(plan)})
	return plan, nil
}

// discoveryRecoveryPlan implements the coordinate-failure recovery spec.md
// §4.6.d calls for: "force a recovery plan that prepends a find_monsters-
// style discovery action". It picks the cheapest available discovery
// action whose preconditions already hold, simulates its effects, and lets
// developPlan plan the remainder from there — so the next thing executed
// is real discovery work, not another guess at a destination nothing
// knows yet. Falls back to a plain developPlan call if no discovery
// action currently applies.
func (m *Manager) discoveryRecoveryPlan(ctx context.Context, current map[string]state.Value, g goal.Goal, full *catalog.Catalog, cd CooldownInfo) (planner.Plan, error) {
	available := m.cooldownFilter.Apply(full, toCooldownRecord(cd))

	var discovery *catalog.Action
	for _, a := range available.Snapshot() {
		if a.Classification != catalog.Discovery || !a.Matches(current) {
			continue
		}
		if discovery == nil || a.Weight < discovery.Weight || (a.Weight == discovery.Weight && a.Name < discovery.Name) {
			candidate := a
			discovery = &candidate
		}
	}
	if discovery == nil {
		return m.developPlan(ctx, current, g, full, cd)
	}

	rest, err := m.developPlan(ctx, discovery.Apply(current), g, full, cd)
	if err != nil {
		return nil, err
	}
	plan := make(planner.Plan, 0, len(rest)+1)
	plan = append(plan, planner.Step{Action: discovery.Name, Cost: discovery.Weight})
	plan = append(plan, rest...)
	return plan, nil
}

// toCooldownRecord adapts the execution package's simplified CooldownInfo
// into the richer cooldown.Record the Filter expects. No expiration
// timestamp is available at this boundary, so the record relies on
// Record.IsReady's documented fallback (zero ExpirationTime →
// RemainingSeconds == 0).
func toCooldownRecord(cd CooldownInfo) cooldown.Record {
	remaining := 0.0
	if !cd.Ready {
		remaining = cd.RemainingSeconds
		if remaining <= 0 {
			remaining = 0.001 // guarantee IsReady's fallback reports not-ready
		}
	}
	return cooldown.Record{RemainingSeconds: remaining}
}

func toPlanItems(p planner.Plan) []PlanItem {
	items := make([]PlanItem, len(p))
	for i, step := range p {
		items[i] = PlanItem{ActionName: step.Action}
	}
	return items
}
