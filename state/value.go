// Package state implements the State Value Model: a single equivalence
// predicate (Matches) and distance metric (Distance) shared by conditions,
// effects, goals, and the planner's search nodes. Every comparison in the
// planner goes through this package rather than comparing Go values
// directly, because world-state values are heterogeneous (bounded ints,
// percentages, booleans, short strings, nested records) and carry a
// wildcard sentinel that none of Go's native comparison operators know
// about.
package state

import "fmt"

// Kind discriminates the tagged union a Value carries. Keeping this a
// closed enum (rather than reaching for interface{} and a type switch at
// every comparison site) is what makes Matches exhaustive and cheap.
type Kind int

const (
	KindUnspecified Kind = iota // wildcard: matches anything
	KindNull                    // explicit absence
	KindBool
	KindInt
	KindFloat
	KindString
	KindSeq
	KindRecord
	KindThresholdGT      // required-side only: candidate > N
	KindThresholdGTE     // required-side only: candidate >= N
	KindThresholdLT      // required-side only: candidate < N
	KindThresholdNotNull // required-side only: candidate is present and non-null
)

// Value is the tagged union every world-state key, condition, effect, and
// goal entry is expressed in.
type Value struct {
	Kind      Kind
	Bool      bool
	Num       float64 // backs both KindInt and KindFloat; cross-type numeric compares use this directly
	Str       string
	Seq       []Value
	Record    map[string]Value
	Threshold float64 // backs KindThresholdGT/GTE/LT
}

// Unspecified returns the wildcard sentinel: matches anything, on either side.
func Unspecified() Value { return Value{Kind: KindUnspecified} }

// Null returns the explicit-absence value.
func Null() Value { return Value{Kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int wraps a bounded integer (character level, hp, inventory counts, ...).
func Int(i int) Value { return Value{Kind: KindInt, Num: float64(i)} }

// Float wraps a floating-point value (percentages, fractional costs).
func Float(f float64) Value { return Value{Kind: KindFloat, Num: f} }

// String wraps a short string identifier (equipment code, task name, element type).
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Seq wraps an ordered sequence of values.
func Seq(items ...Value) Value { return Value{Kind: KindSeq, Seq: items} }

// Record wraps a nested map of sub-keys, itself subject to the subset rule
// when it appears on the required side of a comparison.
func Record(fields map[string]Value) Value { return Value{Kind: KindRecord, Record: fields} }

// GT builds a required-side threshold: candidate > n.
func GT(n float64) Value { return Value{Kind: KindThresholdGT, Threshold: n} }

// GTE builds a required-side threshold: candidate >= n.
func GTE(n float64) Value { return Value{Kind: KindThresholdGTE, Threshold: n} }

// LT builds a required-side threshold: candidate < n.
func LT(n float64) Value { return Value{Kind: KindThresholdLT, Threshold: n} }

// NotNull builds a required-side threshold: candidate is present and non-null.
func NotNull() Value { return Value{Kind: KindThresholdNotNull} }

// IsNumeric reports whether v carries a numeric value (int or float).
func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// IsThreshold reports whether v is one of the required-side threshold kinds.
func (v Value) IsThreshold() bool {
	switch v.Kind {
	case KindThresholdGT, KindThresholdGTE, KindThresholdLT, KindThresholdNotNull:
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindUnspecified:
		return "*"
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindInt:
		return fmt.Sprintf("%d", int(v.Num))
	case KindFloat:
		return fmt.Sprintf("%g", v.Num)
	case KindString:
		return v.Str
	case KindSeq:
		return fmt.Sprintf("%v", v.Seq)
	case KindRecord:
		return fmt.Sprintf("%v", v.Record)
	case KindThresholdGT:
		return fmt.Sprintf(">%g", v.Threshold)
	case KindThresholdGTE:
		return fmt.Sprintf(">=%g", v.Threshold)
	case KindThresholdLT:
		return fmt.Sprintf("<%g", v.Threshold)
	case KindThresholdNotNull:
		return "!null"
	default:
		return "?"
	}
}

// Equal reports plain equality between two values, ignoring the
// wildcard/threshold matching rules in Matches. Used where a literal
// comparison is wanted (e.g. deep-equal assertions in tests).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		if a.IsNumeric() && b.IsNumeric() {
			return a.Num == b.Num
		}
		return false
	}
	switch a.Kind {
	case KindUnspecified, KindNull, KindThresholdNotNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindInt, KindFloat:
		return a.Num == b.Num
	case KindString:
		return a.Str == b.Str
	case KindThresholdGT, KindThresholdGTE, KindThresholdLT:
		return a.Threshold == b.Threshold
	case KindSeq:
		if len(a.Seq) != len(b.Seq) {
			return false
		}
		for i := range a.Seq {
			if !Equal(a.Seq[i], b.Seq[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(a.Record) != len(b.Record) {
			return false
		}
		for k, av := range a.Record {
			bv, ok := b.Record[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
