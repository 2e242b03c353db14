package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctSorted(t *testing.T) {
	type row struct{ A, B string }

	got := DistinctSorted([]row{
		{A: "b", B: "2"},
		{A: "a", B: "1"},
		{A: "b", B: "2"},
		{A: "a", B: "2"},
	}, func(r row) string { return Key(r.A, r.B) })

	assert.Equal(t, []row{
		{A: "a", B: "1"},
		{A: "a", B: "2"},
		{A: "b", B: "2"},
	}, got)
}

func TestFloatPtrDistinguishesNullFromZero(t *testing.T) {
	zero := 0.0
	assert.NotEqual(t, FloatPtr(nil), FloatPtr(&zero))
}

func TestKeySeparatorPreventsCollisions(t *testing.T) {
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}
