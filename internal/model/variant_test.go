package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVariantFor(t *testing.T) {
	v, ok := VariantFor(AccountTypeSavings)
	assert.True(t, ok)
	assert.Equal(t, AccountTypeSavings, v.Type)

	v, ok = VariantFor(AccountTypeCurrent)
	assert.True(t, ok)
	assert.Equal(t, AccountTypeCurrent, v.Type)

	_, ok = VariantFor("fixed-deposit")
	assert.False(t, ok)
}

func TestSavingsWithdrawalConstraint(t *testing.T) {
	v := Savings()
	bal := decimal.NewFromInt(1000)

	assert.True(t, v.AllowsWithdrawal(bal, decimal.NewFromInt(500)), "leaves exactly the floor")
	assert.False(t, v.AllowsWithdrawal(bal, decimal.NewFromInt(501)))
	assert.True(t, v.BearsInterest())
}

func TestCurrentWithdrawalConstraint(t *testing.T) {
	v := Current()
	bal := decimal.Zero

	assert.True(t, v.AllowsWithdrawal(bal, decimal.NewFromInt(5000)), "down to the overdraft limit")
	assert.False(t, v.AllowsWithdrawal(bal, decimal.NewFromInt(5001)))
	assert.False(t, v.BearsInterest())
}

func TestInterestMath(t *testing.T) {
	v := Savings()
	got := v.Interest(decimal.NewFromInt(1000), 2)
	assert.True(t, got.Equal(decimal.NewFromInt(80)), "1000 at 4%% over 2 years, got %s", got)
}
