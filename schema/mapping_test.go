package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromColumns(t *testing.T) {
	assert := assert.New(t)

	m := FromColumns("R", []string{"A", "B", "C"})
	idx, ok := m.Lookup("R.B")
	assert.True(ok)
	assert.Equal(1, idx)
	assert.Equal(3, m.Len())
}

func TestLookupMissingColumn(t *testing.T) {
	assert := assert.New(t)

	m := FromColumns("R", []string{"A"})
	_, ok := m.Lookup("R.Z")
	assert.False(ok)
}

func TestWithColumnDoesNotMutateReceiver(t *testing.T) {
	assert := assert.New(t)

	base := FromColumns("R", []string{"A"})
	extended := base.WithColumn("LITERAL_SUM_0", 1)

	_, ok := base.Lookup("LITERAL_SUM_0")
	assert.False(ok)

	idx, ok := extended.Lookup("LITERAL_SUM_0")
	assert.True(ok)
	assert.Equal(1, idx)
}

func TestJoinShiftsRightIndices(t *testing.T) {
	assert := assert.New(t)

	left := FromColumns("R", []string{"A", "B"})
	right := FromColumns("S", []string{"C"})
	combined := Join(left, right, left.Len())

	idx, ok := combined.Lookup("R.B")
	assert.True(ok)
	assert.Equal(1, idx)

	idx, ok = combined.Lookup("S.C")
	assert.True(ok)
	assert.Equal(2, idx)
	assert.Equal(3, combined.Len())
}

func TestNextFreeIndex(t *testing.T) {
	assert := assert.New(t)

	m := FromColumns("R", []string{"A", "B"})
	assert.Equal(2, m.NextFreeIndex())
}
