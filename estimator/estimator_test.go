package estimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goaplanner/agent/catalog"
)

func TestEstimateDuration_PerCategory(t *testing.T) {
	plan := []catalog.Action{
		{Name: "move"},
		{Name: "fight_monster"},
		{Name: "gather_resources"},
		{Name: "rest"},
	}
	got := EstimateDuration(plan)
	want := movementEstimate + combatEstimate + gatheringEstimate + defaultEstimate + 4*cooldownBudget
	assert.Equal(t, want, got)
}

func TestEstimateDuration_EmptyPlanIsZero(t *testing.T) {
	assert.Equal(t, time.Duration(0), EstimateDuration(nil))
}

func TestEstimateDuration_CaseInsensitive(t *testing.T) {
	assert.Equal(t, combatEstimate+cooldownBudget, EstimateDuration([]catalog.Action{{Name: "FIGHT_Monster"}}))
}
