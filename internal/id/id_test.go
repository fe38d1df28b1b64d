package id

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountNumberRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		n := NewAccountNumber(r)
		assert.GreaterOrEqual(t, n, Min)
		assert.LessOrEqual(t, n, Max)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Min))
	assert.True(t, Valid(Max))
	assert.True(t, Valid(42345678))
	assert.False(t, Valid(Min-1), "7 digits")
	assert.False(t, Valid(Max+1), "9 digits")
	assert.False(t, Valid(0))
	assert.False(t, Valid(-42345678))
}

func TestParse(t *testing.T) {
	n, err := Parse("42345678")
	require.NoError(t, err)
	assert.Equal(t, int64(42345678), n)

	_, err = Parse("not-a-number")
	assert.Error(t, err)

	_, err = Parse("1234567")
	assert.Error(t, err, "out of range")
}
