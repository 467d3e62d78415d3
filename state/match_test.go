package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches_Wildcard(t *testing.T) {
	assert.True(t, Matches(Int(5), Unspecified()))
	assert.True(t, Matches(Unspecified(), Bool(true)))
}

func TestMatches_Null(t *testing.T) {
	assert.True(t, Matches(Null(), Null()))
	assert.False(t, Matches(Int(1), Null()))
	assert.False(t, Matches(Null(), Int(1)))
}

func TestMatches_Threshold(t *testing.T) {
	assert.True(t, Matches(Int(11), GT(10)))
	assert.False(t, Matches(Int(10), GT(10)))
	assert.True(t, Matches(Int(10), GTE(10)))
	assert.True(t, Matches(Int(9), LT(10)))
	assert.False(t, Matches(Int(10), LT(10)))
	assert.True(t, Matches(Int(5), NotNull()))
	assert.False(t, Matches(Null(), NotNull()))
	assert.False(t, Matches(String("ten"), GT(5)))
}

func TestMatches_Literal(t *testing.T) {
	assert.True(t, Matches(Bool(true), Bool(true)))
	assert.False(t, Matches(Bool(true), Bool(false)))
	assert.True(t, Matches(String("a"), String("a")))
	assert.False(t, Matches(String("a"), String("b")))
	assert.True(t, Matches(Int(3), Float(3)))
}

func TestMatches_Seq(t *testing.T) {
	a := Seq(Int(1), Int(2))
	b := Seq(Int(1), Int(2))
	c := Seq(Int(1), Int(3))
	assert.True(t, Matches(a, b))
	assert.False(t, Matches(a, c))
	assert.False(t, Matches(Seq(Int(1)), Seq(Int(1), Int(2))))
}

func TestMatches_RecordSubset(t *testing.T) {
	candidate := Record(map[string]Value{
		"x": Int(1),
		"y": Int(2),
		"z": String("unused"),
	})
	required := Record(map[string]Value{
		"x": Int(1),
		"y": Int(2),
	})
	assert.True(t, Matches(candidate, required), "required keys are a subset of candidate")

	requiredMissing := Record(map[string]Value{"w": Int(9)})
	assert.False(t, Matches(candidate, requiredMissing))

	assert.False(t, Matches(Int(1), required), "non-record candidate can never satisfy a record requirement")
}

func TestMatches_RecordNestedWildcard(t *testing.T) {
	candidate := Record(map[string]Value{"x": Int(1)})
	required := Record(map[string]Value{"x": Unspecified()})
	assert.True(t, Matches(candidate, required))
}

func TestDistance_IdenticalStatesAreZero(t *testing.T) {
	a := map[string]Value{"at_target": Bool(true), "hp": Int(100)}
	b := map[string]Value{"at_target": Bool(true), "hp": Int(100)}
	assert.Equal(t, 0, Distance(a, b))
}

func TestDistance_CountsDisagreements(t *testing.T) {
	a := map[string]Value{"at_target": Bool(false), "hp": Int(50)}
	b := map[string]Value{"at_target": Bool(true), "hp": Int(50)}
	assert.Equal(t, 1, Distance(a, b))
}

func TestDistance_SkipsWildcardKeys(t *testing.T) {
	a := map[string]Value{"goal_irrelevant": Unspecified(), "hp": Int(1)}
	b := map[string]Value{"hp": Int(2)}
	assert.Equal(t, 1, Distance(a, b))
}

func TestDistance_IsSymmetric(t *testing.T) {
	a := map[string]Value{"x": Int(1), "y": Int(2)}
	b := map[string]Value{"x": Int(9), "z": Bool(true)}
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Int(1), Float(1)))
	assert.False(t, Equal(Int(1), Int(2)))
	assert.True(t, Equal(Unspecified(), Unspecified()))
	assert.True(t, Equal(Record(map[string]Value{"a": Int(1)}), Record(map[string]Value{"a": Int(1)})))
}
