// Package estimator implements the Plan Estimator: a scheduling-hint-only
// wall-clock estimate for a candidate plan. It never affects plan
// correctness or selection.
package estimator

import (
	"strings"
	"time"

	"github.com/goaplanner/agent/catalog"
)

const (
	movementEstimate = 5 * time.Second
	combatEstimate   = 10 * time.Second
	gatheringEstimate = 8 * time.Second
	defaultEstimate  = 3 * time.Second
	cooldownBudget   = 1 * time.Second
)

// EstimateDuration sums a per-action estimate (by action-name family) plus
// a flat per-action cooldown budget, grounded on the original planner's
// estimate_plan_duration. Category is inferred from the action name's
// family substring rather than its discovery/execution classification,
// matching spec §4.5 literally ("movement ≈ 5 s, combat ≈ 10 s, gathering
// ≈ 8 s, default ≈ 3 s"); this is a scheduling hint only, so the
// name-substring approach the Execution Manager otherwise avoids (REDESIGN
// FLAG 2) is harmless here.
func EstimateDuration(plan []catalog.Action) time.Duration {
	var total time.Duration
	for _, action := range plan {
		total += perActionEstimate(action.Name) + cooldownBudget
	}
	return total
}

func perActionEstimate(actionName string) time.Duration {
	lower := strings.ToLower(actionName)
	switch {
	case strings.Contains(lower, "move"):
		return movementEstimate
	case strings.Contains(lower, "fight"), strings.Contains(lower, "attack"), strings.Contains(lower, "combat"):
		return combatEstimate
	case strings.Contains(lower, "gather"):
		return gatheringEstimate
	default:
		return defaultEstimate
	}
}
