// Package learning implements the Outcome Learner: a dispatch on action
// classification that updates the shared knowledge base from discovery
// action responses, and the should_replan_after_discovery policy that
// guards the Execution Manager against thrashing (spec §4.9).
package learning

// Response is the outcome data an action's execution produced, as much of
// it as the learner needs — the narrow slice of the full action-executor
// result relevant to knowledge extraction. Fields unrelated to a given
// action's classification are left at their zero value.
type Response struct {
	ActionName string

	// Weapon evaluation.
	SelectedItemCode string

	// Workshop discovery.
	WorkshopType string
	WorkshopX    int
	WorkshopY    int

	// Material transformation / crafting.
	MaterialItemCode string
	MaterialDelta    int

	// Exploration.
	ExploredContentType string
	ExploredX           int
	ExploredY           int

	// GoalTag scopes weapon-choice recording to the goal that requested
	// it, since two goals may each want a different weapon.
	GoalTag string

	// WorkshopAlreadyKnown must be set by the caller by querying the
	// knowledge base *before* Learn is invoked for this response — Learn
	// itself records the workshop location unconditionally, so by the
	// time ShouldReplanAfterDiscovery runs the store would otherwise
	// always report it as known.
	WorkshopAlreadyKnown bool
}
