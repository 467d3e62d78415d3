package state

// Matches implements the equivalence predicate from spec §4.1: is
// candidate acceptable where required was asked for? Required is always
// the "what we need" side (a condition, an effect, a goal entry); candidate
// is always the "what we have" side (a world-state value). The two are not
// interchangeable: thresholds and the record subset rule are only
// meaningful on the required side.
func Matches(candidate, required Value) bool {
	// 1. Either side unspecified: wildcard, always matches.
	if candidate.Kind == KindUnspecified || required.Kind == KindUnspecified {
		return true
	}

	// Threshold expressions are evaluated against the candidate regardless
	// of the candidate's own kind, never reparsed or mutated into a literal.
	if required.IsThreshold() {
		return matchesThreshold(candidate, required)
	}

	// 2. Either side absent (null): equal only if both are absent.
	if candidate.Kind == KindNull || required.Kind == KindNull {
		return candidate.Kind == KindNull && required.Kind == KindNull
	}

	switch {
	case required.Kind == KindBool && candidate.Kind == KindBool:
		return candidate.Bool == required.Bool

	case required.Kind == KindString && candidate.Kind == KindString:
		return candidate.Str == required.Str

	case required.IsNumeric() && candidate.IsNumeric():
		return candidate.Num == required.Num

	case required.Kind == KindSeq && candidate.Kind == KindSeq:
		if len(candidate.Seq) != len(required.Seq) {
			return false
		}
		for i := range required.Seq {
			if !Matches(candidate.Seq[i], required.Seq[i]) {
				return false
			}
		}
		return true

	case required.Kind == KindRecord:
		// Subset rule: required must be a subset of candidate. A
		// non-record candidate can never satisfy a record requirement.
		if candidate.Kind != KindRecord {
			return false
		}
		for key, want := range required.Record {
			have, ok := candidate.Record[key]
			if !ok {
				have = Null()
			}
			if !Matches(have, want) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

func matchesThreshold(candidate, required Value) bool {
	switch required.Kind {
	case KindThresholdNotNull:
		return candidate.Kind != KindNull
	case KindThresholdGT:
		return candidate.IsNumeric() && candidate.Num > required.Threshold
	case KindThresholdGTE:
		return candidate.IsNumeric() && candidate.Num >= required.Threshold
	case KindThresholdLT:
		return candidate.IsNumeric() && candidate.Num < required.Threshold
	default:
		return false
	}
}

// Distance counts the keys on which a and b disagree under Matches,
// symmetrically across the union of their key sets, excluding any key
// whose value on either side is the unspecified wildcard (spec §4.1). This
// is the admissible heuristic the planner feeds into f = g + h: each
// disagreement must be corrected by at least one action, and every action
// changes at least one key, so Distance never overestimates the number of
// remaining actions (and therefore never overestimates remaining cost under
// unit or >=1 action weights).
//
// A key missing from one side is read as the unspecified wildcard, which
// matches anything, so only keys present on both sides can add to the
// count: keys present only in a (the "current state" side) never do, and
// neither do goal keys the current state lacks. Swapping a and b gives the
// same count, which the tests rely on.
func Distance(a, b map[string]Value) int {
	scored := make(map[string]struct{}, len(b))
	score := 0

	for key, bv := range b {
		if bv.Kind == KindUnspecified {
			continue
		}
		av, ok := a[key]
		if !ok {
			av = Unspecified()
		}
		if !Matches(av, bv) {
			score++
		}
		scored[key] = struct{}{}
	}

	for key, av := range a {
		if _, done := scored[key]; done {
			continue
		}
		if av.Kind == KindUnspecified {
			continue
		}
		bv, ok := b[key]
		if !ok {
			bv = Unspecified()
		}
		if !Matches(bv, av) {
			score++
		}
	}

	return score
}
