// Package cooldown implements the Cooldown Record and the Cooldown-Aware
// Filter wrapping the Action Catalog.
package cooldown

import "time"

// Record is the per-character cooldown state reported by the remote game
// service (spec §3: "(character_name, expiration_timestamp, total_seconds,
// remaining_seconds, reason_tag)").
type Record struct {
	CharacterName      string
	ExpirationTime     time.Time
	TotalSeconds       float64
	RemainingSeconds   float64
	ReasonTag          string
}

// IsReady reports whether the character may act now: current time is at or
// past ExpirationTime, falling back to RemainingSeconds == 0 when
// ExpirationTime is the zero value (the "malformed timestamp" case named
// in spec §3).
func (r Record) IsReady(now time.Time) bool {
	if r.ExpirationTime.IsZero() {
		return r.RemainingSeconds <= 0
	}
	return !now.Before(r.ExpirationTime)
}

// Remaining returns the duration until the character is ready, clamped to
// zero. Used to size the wait step the Execution Manager inserts.
func (r Record) Remaining(now time.Time) time.Duration {
	if r.IsReady(now) {
		return 0
	}
	if !r.ExpirationTime.IsZero() {
		return r.ExpirationTime.Sub(now)
	}
	return time.Duration(r.RemainingSeconds * float64(time.Second))
}
