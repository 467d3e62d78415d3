package cooldown

import (
	"time"

	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/state"
)

// readyKey is the well-known precondition key an action declares when it
// requires the character to be off cooldown. Declared here rather than in
// the catalog package because only the cooldown filter treats it
// specially; to every other component it is an ordinary state key.
const readyKey = "cooldown_ready"

// Filter wraps an Action Catalog with cooldown awareness. Given a
// character's current cooldown record, Apply decides whether the planner
// may see the full catalog or must work from a restricted one that is
// guaranteed immediately executable.
type Filter struct {
	clock func() time.Time
}

// NewFilter returns a Filter using time.Now as its clock. A custom clock
// may be injected for deterministic tests.
func NewFilter() *Filter {
	return &Filter{clock: time.Now}
}

// WithClock overrides the filter's time source (test seam).
func (f *Filter) WithClock(clock func() time.Time) *Filter {
	f.clock = clock
	return f
}

// Apply returns the catalog the planner should use for this planning
// attempt: the full catalog unchanged when the character is ready to act,
// or a filtered catalog with every cooldown_ready=true-gated action
// dropped when it is not (spec §4.4).
func (f *Filter) Apply(full *catalog.Catalog, record Record) *catalog.Catalog {
	if record.IsReady(f.clock()) {
		return full
	}
	return full.Filter(func(a catalog.Action) bool {
		required, ok := a.Preconditions[readyKey]
		if !ok {
			return true
		}
		return !(required.Kind == state.KindBool && required.Bool)
	})
}

// DeferredUntil exposes the earliest moment at which planning may resume
// with the full, unfiltered catalog. Returns ok=false when the character
// is already ready.
func (f *Filter) DeferredUntil(record Record) (t time.Time, ok bool) {
	now := f.clock()
	if record.IsReady(now) {
		return time.Time{}, false
	}
	if !record.ExpirationTime.IsZero() {
		return record.ExpirationTime, true
	}
	return now.Add(time.Duration(record.RemainingSeconds * float64(time.Second))), true
}
