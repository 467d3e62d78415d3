package execution

import (
	"context"
	"sync"
	"time"

	"github.com/goaplanner/agent/agenterr"
	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/cooldown"
	"github.com/goaplanner/agent/gameclient"
	"github.com/goaplanner/agent/goal"
	"github.com/goaplanner/agent/knowledge"
	"github.com/goaplanner/agent/learning"
	"github.com/goaplanner/agent/logging"
	"github.com/goaplanner/agent/planner"
	"github.com/goaplanner/agent/state"
	"github.com/goaplanner/agent/worldstate"
)

// DefaultMaxIterations bounds Phase II's execute/replan loop (spec §4.6:
// "Iteration cap: default 50").
const DefaultMaxIterations = 50

// Manager is the Execution Manager: single-threaded cooperative, one
// instance per character (spec §5). Nothing here is safe for concurrent
// use on behalf of the same character; Start/Stop/SetGoal/GetStatus are
// the only methods meant to be called from outside the manager's own
// goroutine, and they're synchronized for that reason.
type Manager struct {
	character string
	executor  ActionExecutor
	observer  Observer
	catalog   *catalog.Catalog
	defaults  worldstate.Defaults
	store     *knowledge.Store
	learner   *learning.Learner
	logger    logging.Logger
	cooldownFilter *cooldown.Filter

	maxIterations       int
	maxSearchIterations int

	mu           sync.Mutex
	goal         goal.Goal
	status       Status
	stats        Stats
	planLength   int
	planIndex    int
	lastSnapshot gameclient.CharacterSnapshot
	lastErr      error
	running      bool
	stopCh       chan struct{}
	doneCh       chan struct{}

	// actionIndex holds the most recent set of actions developPlan handed
	// to the planner, including parameterized move_to_* instances the
	// frozen catalog never registers. executePlan consults it after a
	// catalog miss so a plan step the factory synthesized can still be
	// dispatched.
	actionIndex map[string]catalog.Action
}

// Config bundles the collaborators a Manager needs. All fields except
// Logger, MaxIterations and MaxSearchIterations are required; those three
// fall back to defaults when unset.
type Config struct {
	Character           string
	Executor             ActionExecutor
	Observer             Observer
	Catalog              *catalog.Catalog
	Defaults             worldstate.Defaults
	Store                *knowledge.Store
	Learner              *learning.Learner
	Logger               logging.Logger
	MaxIterations        int // default DefaultMaxIterations
	MaxSearchIterations  int // default planner.DefaultMaxIterations
}

// New constructs a Manager. The catalog is frozen immediately: per spec
// §4.3 it becomes immutable once the Execution Manager begins a plan, and
// a Manager's whole purpose is to begin plans.
func New(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	maxSearch := cfg.MaxSearchIterations
	if maxSearch <= 0 {
		maxSearch = planner.DefaultMaxIterations
	}
	cfg.Catalog.Freeze()
	return &Manager{
		character:           cfg.Character,
		executor:            cfg.Executor,
		observer:            cfg.Observer,
		catalog:              cfg.Catalog,
		defaults:             cfg.Defaults,
		store:                cfg.Store,
		learner:              cfg.Learner,
		logger:               logger,
		cooldownFilter:       cooldown.NewFilter(),
		maxIterations:        maxIter,
		maxSearchIterations:  maxSearch,
		status:               StatusIdle,
		actionIndex:          make(map[string]catalog.Action),
	}
}

// lookupAction resolves an action name to its definition, checking the
// frozen catalog first and falling back to actionIndex for the
// parameterized instances developPlan synthesizes on the fly (spec §4.3's
// catalog freeze only applies to the static configuration; factory
// instances are never added to it).
func (m *Manager) lookupAction(name string) (catalog.Action, bool) {
	if a, ok := m.catalog.Get(name); ok {
		return a, ok
	}
	a, ok := m.actionIndex[name]
	return a, ok
}

// SetGoal installs a new goal and resets the reported status to idle
// (spec §6 control surface). Safe to call at any time. The goal is read
// when a RunOnce begins: a RunOnce already in progress keeps executing its
// current plan against the goal it started with, and the new goal takes
// effect from the next RunOnce (under Start, the loop's next iteration).
func (m *Manager) SetGoal(wanted map[string]state.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goal = worldstate.MinimalGoal(wanted)
	m.status = StatusIdle
}

// GetStatus returns a structured snapshot of the manager's current state
// (spec §6: "current goal, plan length, execution stats, last-seen
// character snapshot summary").
func (m *Manager) GetStatus() StatusReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	report := StatusReport{
		Status:       m.status,
		Goal:         map[string]state.Value(m.goal),
		Stats:        m.stats,
		LastSnapshot: m.lastSnapshot,
		PlanLength:   m.planLength,
		PlanIndex:    m.planIndex,
	}
	if m.lastErr != nil {
		report.LastError = m.lastErr.Error()
	}
	return report
}

// RunOnce blocks running one full develop→execute→replan cycle to
// completion, returning the terminal status. Start calls it in a loop for
// asynchronous callers; calling it directly gives synchronous single-shot
// use (as the tests do).
func (m *Manager) RunOnce(ctx context.Context) (Status, error) {
	m.mu.Lock()
	g := m.goal
	m.mu.Unlock()

	if g == nil {
		return StatusDoneFail, agenterr.New("RunOnce", "configuration", agenterr.ErrMissingConfiguration).WithID("no goal set")
	}

	observed, err := m.observer.Observe(ctx, m.character, false)
	if err != nil {
		m.setStatus(StatusDoneFail, err)
		return StatusDoneFail, err
	}
	m.mu.Lock()
	m.lastSnapshot = observed.Snapshot
	m.mu.Unlock()

	if goal.Satisfied(observed.State, g) {
		m.setStatus(StatusDoneOK, nil)
		return StatusDoneOK, nil
	}

	plan, err := m.developPlan(ctx, observed.State, g, m.catalog, observed.Cooldown)
	if err != nil {
		m.setStatus(StatusDoneFail, err)
		return StatusDoneFail, err
	}
	m.setStatus(StatusPlanDeveloped, nil)

	return m.executePlan(ctx, toPlanItems(plan), g)
}

func (m *Manager) setStatus(s Status, err error) {
	m.mu.Lock()
	m.status = s
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) incrStat(f func(*Stats)) {
	m.mu.Lock()
	f(&m.stats)
	m.mu.Unlock()
}

// Start begins an asynchronous loop that repeatedly calls RunOnce,
// re-observing and re-planning every time the goal is (re)satisfied or
// invalidated, until Stop is called, ctx is cancelled, or a RunOnce ends
// in StatusDoneFail. Idempotent: calling Start while
// already running is a no-op (spec §6: "async lifecycle; idempotent").
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	stopCh := m.stopCh
	doneCh := m.doneCh
	m.mu.Unlock()

	go func() {
		defer close(doneCh)
		for {
			select {
			case <-stopCh:
				return
			case <-ctx.Done():
				return
			default:
			}
			status, _ := m.RunOnce(ctx)
			if status == StatusDoneFail {
				return
			}
			if status == StatusDoneOK {
				// Goal achieved; wait for a new goal or cancellation
				// rather than busy-looping RunOnce against a satisfied
				// goal.
				select {
				case <-stopCh:
					return
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
			}
		}
	}()
}

// Stop requests the loop exit and blocks until it has observed the
// request (spec §6: "stop() returns once the loop has observed the
// flag"). Idempotent.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	close(m.stopCh)
	doneCh := m.doneCh
	m.mu.Unlock()

	<-doneCh

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}
