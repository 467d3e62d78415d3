package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaplanner/agent/catalog"
	"github.com/goaplanner/agent/state"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecord_IsReady(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	assert.True(t, Record{ExpirationTime: now.Add(-time.Minute)}.IsReady(now))
	assert.False(t, Record{ExpirationTime: now.Add(time.Minute)}.IsReady(now))
	assert.True(t, Record{RemainingSeconds: 0}.IsReady(now), "zero ExpirationTime falls back to RemainingSeconds")
	assert.False(t, Record{RemainingSeconds: 5}.IsReady(now))
}

func TestRecord_Remaining(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	r := Record{ExpirationTime: now.Add(10 * time.Second)}
	assert.Equal(t, 10*time.Second, r.Remaining(now))
	assert.Equal(t, time.Duration(0), Record{}.Remaining(now))
}

func buildCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.AddCondition("fight", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddCondition("rest", "cooldown_ready", state.Bool(true)))
	require.NoError(t, c.AddCondition("inspect", "at_target", state.Bool(true)))
	c.Freeze()
	return c
}

func TestFilter_ReadyPassesThrough(t *testing.T) {
	c := buildCatalog(t)
	f := NewFilter().WithClock(fixedClock(time.Now()))

	available := f.Apply(c, Record{RemainingSeconds: 0})
	assert.Equal(t, c.Names(), available.Names())
}

func TestFilter_NotReadyDropsGatedActions(t *testing.T) {
	c := buildCatalog(t)
	f := NewFilter().WithClock(fixedClock(time.Now()))

	available := f.Apply(c, Record{RemainingSeconds: 30})
	assert.Equal(t, []string{"inspect"}, available.Names(), "only the ungated action survives")
}

func TestFilter_DeferredUntil(t *testing.T) {
	now := time.Now()
	f := NewFilter().WithClock(fixedClock(now))

	_, ok := f.DeferredUntil(Record{RemainingSeconds: 0})
	assert.False(t, ok)

	until, ok := f.DeferredUntil(Record{RemainingSeconds: 5})
	require.True(t, ok)
	assert.WithinDuration(t, now.Add(5*time.Second), until, time.Millisecond)
}
