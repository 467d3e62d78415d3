package execution

import (
	"context"
	"errors"
	"time"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/learning"
	"github.com/goaplanner/agent/worldstate"
)

// executePlan implements Phase II (spec §4.6): step the plan, classify
// outcomes, insert waits, and selectively replan, until the goal is
// satisfied, the plan is exhausted, or the iteration cap is hit.
func (m *Manager) executePlan(ctx context.Context, plan []PlanItem, g goal.Goal) (Status, error) {
	index := 0
	iterations := 0
	chainKey := ""

	for {
		select {
		case <-ctx.Done():
			m.setStatus(StatusDoneFail, ctx.Err())
			return StatusDoneFail, ctx.Err()
		default:
		}

		if iterations >= m.maxIterations {
			err := agenterr.New("executePlan", "execution", agenterr.ErrIterationCapExceeded)
			m.setStatus(StatusDoneFail, err)
			return StatusDoneFail, err
		}
		iterations++
		m.incrStat(func(s *Stats) { s.IterationsRun++ })

		observed, err := m.observer.Observe(ctx, m.character, false)
		if err != nil {
			m.setStatus(StatusDoneFail, err)
			return StatusDoneFail, err
		}

		// a. Wait-insertion: if the character isn't ready and the next
		// step isn't already a wait, insert one and restart from index 0
		// so it executes first.
		if !observed.Cooldown.Ready && (index >= len(plan) || plan[index].ActionName != waitActionName) {
			plan = insertWait(plan, index, observed.Cooldown.RemainingSeconds)
			index = 0
			m.incrStat(func(s *Stats) { s.WaitsInserted++ })
			m.setStatus(StatusWaiting, nil)
			continue
		}

		// b. Goal check.
		if goal.Satisfied(observed.State, g) {
			m.setStatus(StatusDoneOK, nil)
			return StatusDoneOK, nil
		}

		if index >= len(plan) {
			// Plan exhausted without satisfying the goal: one replan
			// attempt from the current position before giving up.
			newPlan, err := m.developPlan(ctx, observed.State, g, m.catalog, observed.Cooldown)
			if err != nil {
				m.setStatus(StatusDoneFail, err)
				return StatusDoneFail, err
			}
			plan = toPlanItems(newPlan)
			index = 0
			m.recordPlan(plan, index)
			continue
		}

		m.recordPlan(plan, index)
		item := plan[index]
		m.setStatus(StatusExecuting, nil)

		if item.ActionName == waitActionName {
			if err := sleepCancelable(ctx, item.WaitDuration); err != nil {
				m.setStatus(StatusDoneFail, err)
				return StatusDoneFail, err
			}
			index++
			continue
		}

		action, ok := m.lookupAction(item.ActionName)
		if !ok {
			err := agenterr.New("executePlan", "execution", agenterr.ErrActionPreconditionMiss).WithID(item.ActionName)
			m.setStatus(StatusDoneFail, err)
			return StatusDoneFail, err
		}

		outcome := m.executor.Execute(ctx, m.character, action, observed.State)
		m.incrStat(func(s *Stats) { s.ActionsExecuted++ })

		if !outcome.Success {
			switch {
			case agenterr.IsAuthFailure(outcome.Err):
				// d. Authentication failure is fatal: no retries, stop
				// immediately (spec §4.6.d, §8 scenario F).
				m.setStatus(StatusDoneFail, outcome.Err)
				return StatusDoneFail, outcome.Err

			case errors.Is(outcome.Err, agenterr.ErrCoordinateUnknown):
				// Coordinate failure: prepend a discovery recovery step
				// and restart from the beginning of the plan (spec §4.6.d:
				// "force a recovery plan that prepends a find_monsters-
				// style discovery action").
				recovery, err := m.discoveryRecoveryPlan(ctx, observed.State, g, m.catalog, observed.Cooldown)
				if err != nil {
					m.setStatus(StatusDoneFail, err)
					return StatusDoneFail, err
				}
				plan = toPlanItems(recovery)
				index = 0
				m.recordPlan(plan, index)
				continue

			default:
				// Other failure: replan from the current position; splice
				// in the new suffix, or fail if no plan exists.
				m.setStatus(StatusReplanning, nil)
				suffix, err := m.developPlan(ctx, observed.State, g, m.catalog, observed.Cooldown)
				if err != nil {
					m.setStatus(StatusDoneFail, outcome.Err)
					return StatusDoneFail, outcome.Err
				}
				plan = toPlanItems(suffix)
				index = 0
				m.recordPlan(plan, index)
				continue
			}
		}

		// e. Success path: apply effects, and if this was a discovery
		// action, learn from it and maybe replan the suffix.
		runtime := worldstate.ApplyEffectsBack(observed.State, action.Effects)
		for k, v := range outcome.EffectOverrides {
			runtime[k] = v
		}
		if err := m.observer.Update(ctx, m.character, runtime); err != nil {
			m.logger.Warn("state update failed", map[string]interface{}{"error": err.Error()})
		}
		m.store.RecordCharacterSnapshot(ctx, outcome.Snapshot)

		if action.Classification == catalog.Discovery {
			resp := outcome.Learning
			if resp.ActionName == learning.ActionFindCorrectWorkshop {
				// Stamp WorkshopAlreadyKnown from a lookup taken before
				// Learn runs, so ShouldReplanAfterDiscovery (spec §4.9)
				// can tell a genuinely new discovery from a rediscovery
				// of a workshop already on file.
				_, resp.WorkshopAlreadyKnown = m.store.WorkshopLocation(ctx, resp.WorkshopType)
			}
			m.learner.Learn(ctx, resp)
			// Force a fresh observation before deciding whether to
			// replan, per spec §4.6.e ("Force a fresh state observation").
			refreshed, err := m.observer.Observe(ctx, m.character, true)
			if err != nil {
				m.setStatus(StatusDoneFail, err)
				return StatusDoneFail, err
			}
			if action.Name == learning.ActionAnalyzeCraftingChain {
				chainKey = item.ActionName
			}
			if m.learner.ShouldReplanAfterDiscovery(ctx, resp, chainKey) {
				m.setStatus(StatusReplanning, nil)
				m.incrStat(func(s *Stats) { s.ReplansTriggered++ })
				suffix, err := m.developPlan(ctx, refreshed.State, g, m.catalog, refreshed.Cooldown)
				if err != nil {
					m.setStatus(StatusDoneFail, err)
					return StatusDoneFail, err
				}
				plan = append(plan[:index+1], toPlanItems(suffix)...)
			}
		}

		index++
	}
}

func (m *Manager) recordPlan(plan []PlanItem, index int) {
	m.mu.Lock()
	m.planLength = len(plan)
	m.planIndex = index
	m.mu.Unlock()
}

func insertWait(plan []PlanItem, index int, remainingSeconds float64) []PlanItem {
	wait := PlanItem{ActionName: waitActionName, WaitDuration: secondsToDuration(remainingSeconds)}
	out := make([]PlanItem, 0, len(plan)+1)
	out = append(out, wait)
	out = append(out, plan[index:]...)
	return out
}

func secondsToDuration(seconds float64) time.Duration {
	if seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// sleepCancelable waits out d, or returns early with ctx.Err() if ctx is
// canceled first — the cooperative cancellation discipline from spec §5:
// "the loop polls a stop_requested flag ... before every suspension".
func sleepCancelable(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
