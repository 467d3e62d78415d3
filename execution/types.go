// Package execution implements the Execution Manager: the heart of the
// agent's core, orchestrating plan development, stepwise execution,
// outcome learning, and selective replanning (spec §4.6).
package execution

import (
	"context"
	"time"

	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/gameclient"
	"github.com/goaplanner/agent/learning"
	"github.com/goaplanner/agent/state"
)

// Status is one state of the per-iteration state machine from spec §4.6.
type Status string

const (
	StatusIdle          Status = "IDLE"
	StatusPlanDeveloped Status = "PLAN_DEVELOPED"
	StatusExecuting     Status = "EXECUTING"
	StatusWaiting       Status = "WAITING"
	StatusReplanning    Status = "REPLANNING"
	StatusDoneOK        Status = "DONE_OK"
	StatusDoneFail      Status = "DONE_FAIL"
)

// waitActionName is the well-known synthetic action name for an inserted
// wait step (spec design note: "Represent the wait step as a first-class
// action in plans, not as a loop-control side effect").
const waitActionName = "wait"

// PlanItem is one element of the manager's working plan: either a
// reference to a catalog action, or a synthetic wait step carrying its
// own duration directly (a wait is never looked up in the catalog).
type PlanItem struct {
	ActionName   string
	WaitDuration time.Duration
}

// Outcome is what an ActionExecutor reports back for one dispatched
// action. The concrete action implementation (spec §1, out of scope) is
// responsible for actually calling the game client and translating its
// response into this shape.
type Outcome struct {
	Success         bool
	Message         string
	EffectOverrides map[string]state.Value // merged into runtime state alongside the action's declared effects
	CooldownSeconds float64
	Learning        learning.Response // zero value if the action isn't a discovery action
	Snapshot        gameclient.CharacterSnapshot
	Err             error // classified error (agenterr sentinels) when Success is false
}

// ActionExecutor dispatches one action against the external world. The
// core treats every action as opaque beyond its declared preconditions,
// effects, cost, and classification (spec §1); this interface is the
// single seam through which that opaque "execute" happens.
type ActionExecutor interface {
	Execute(ctx context.Context, character string, action catalog.Action, current map[string]state.Value) Outcome
}

// Observer supplies current world state, cache-first with API fallback
// (spec §4.6 Phase I step 1). forceRefresh bypasses the cache.
type Observer interface {
	Observe(ctx context.Context, character string, forceRefresh bool) (ObservedState, error)

	// Update writes the merged runtime state (post effects-application)
	// back to whatever cache Observe reads from, implementing the
	// adapter's "Apply-plan-effects-back" responsibility (spec §4.7)
	// against the observer's own storage.
	Update(ctx context.Context, character string, merged map[string]state.Value) error
}

// ObservedState bundles the flattened runtime state with the cooldown
// record the adapter and cooldown filter both need.
type ObservedState struct {
	State    map[string]state.Value
	Cooldown CooldownInfo
	Snapshot gameclient.CharacterSnapshot
}

// CooldownInfo is the subset of cooldown.Record the manager consults;
// declared here rather than importing cooldown.Record directly so
// Observer implementations stay decoupled from the cooldown package's
// clock-injection machinery.
type CooldownInfo struct {
	Ready            bool
	RemainingSeconds float64
}

// Stats accumulates counters surfaced by GetStatus (spec §6 "execution
// stats").
type Stats struct {
	IterationsRun      int
	ReplansTriggered   int
	WaitsInserted      int
	ActionsExecuted    int
}

// StatusReport is the structured report get_status() returns (spec §6).
type StatusReport struct {
	Status         Status
	Goal           map[string]state.Value
	PlanLength     int
	PlanIndex      int
	Stats          Stats
	LastSnapshot   gameclient.CharacterSnapshot
	LastError      string
}
