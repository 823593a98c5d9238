package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csql-dev/csql/value"
)

func TestConcat(t *testing.T) {
	assert := assert.New(t)

	left := New(value.FromInt(1), value.FromInt(2))
	right := New(value.FromInt(3))
	out := Concat(left, right)

	assert.Equal(3, out.Arity())
	assert.Equal("1", out.Fields[0].Text())
	assert.Equal("2", out.Fields[1].Text())
	assert.Equal("3", out.Fields[2].Text())
}

func TestCanonicalDistinguishesFieldBoundaries(t *testing.T) {
	assert := assert.New(t)

	a := New(value.FromText("a"), value.FromText("b"))
	b := New(value.FromText("ab"))

	assert.NotEqual(a.Canonical(), b.Canonical())
}

func TestCanonicalEqualForEqualTuples(t *testing.T) {
	assert := assert.New(t)

	a := New(value.FromInt(1), value.FromText("x"))
	b := New(value.FromInt(1), value.FromText("x"))

	assert.Equal(a.Canonical(), b.Canonical())
}
