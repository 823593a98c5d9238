package value

import "testing"

import "github.com/stretchr/testify/assert"

func TestFromFieldParsesIntegers(t *testing.T) {
	assert := assert.New(t)

	v := FromField("42")
	assert.True(v.IsInt())
	n, ok := v.Int()
	assert.True(ok)
	assert.Equal(int64(42), n)
}

func TestFromFieldFallsBackToText(t *testing.T) {
	assert := assert.New(t)

	v := FromField("hello")
	assert.False(v.IsInt())
	assert.Equal("hello", v.Text())
}

func TestFromFieldNegativeInteger(t *testing.T) {
	assert := assert.New(t)

	v := FromField("-7")
	n, ok := v.Int()
	assert.True(ok)
	assert.Equal(int64(-7), n)
}

func TestTextRendersIntegers(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("42", FromInt(42).Text())
	assert.Equal("-3", FromInt(-3).Text())
}

func TestEqual(t *testing.T) {
	assert := assert.New(t)

	assert.True(FromInt(5).Equal(FromInt(5)))
	assert.False(FromInt(5).Equal(FromInt(6)))
	assert.False(FromInt(5).Equal(FromText("5")))
	assert.True(FromText("x").Equal(FromText("x")))
}

func TestCompareIntegers(t *testing.T) {
	assert := assert.New(t)

	cmp, ok := Compare(FromInt(1), FromInt(2))
	assert.True(ok)
	assert.Equal(-1, cmp)

	cmp, ok = Compare(FromInt(2), FromInt(1))
	assert.True(ok)
	assert.Equal(1, cmp)

	cmp, ok = Compare(FromInt(1), FromInt(1))
	assert.True(ok)
	assert.Equal(0, cmp)
}

func TestCompareNonIntegerIsNotOk(t *testing.T) {
	assert := assert.New(t)

	_, ok := Compare(FromText("a"), FromInt(1))
	assert.False(ok)
}
