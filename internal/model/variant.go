package model

import "github.com/shopspring/decimal"

// Variant is the policy object distinguishing account types. A single
// account entity consults its Variant for the withdrawal constraint and
// interest eligibility instead of branching on type.
type Variant struct {
	Type AccountType
	// Floor is the lowest balance a withdrawal may leave behind. Positive
	// for a minimum-balance account, negative for an overdraft account.
	Floor decimal.Decimal
	// InterestRate is the simple annual percentage rate. Zero means the
	// variant does not bear interest.
	InterestRate decimal.Decimal
}

// Savings returns the savings policy: 500.00 minimum balance, 4% simple
// annual interest.
func Savings() Variant {
	return Variant{
		Type:         AccountTypeSavings,
		Floor:        decimal.NewFromInt(500),
		InterestRate: decimal.NewFromInt(4),
	}
}

// Current returns the current-account policy: overdraft up to 5000.00, no
// interest.
func Current() Variant {
	return Variant{
		Type:  AccountTypeCurrent,
		Floor: decimal.NewFromInt(-5000),
	}
}

// VariantFor maps an account type to its policy.
func VariantFor(t AccountType) (Variant, bool) {
	switch t {
	case AccountTypeSavings:
		return Savings(), true
	case AccountTypeCurrent:
		return Current(), true
	}
	return Variant{}, false
}

// AllowsWithdrawal reports whether withdrawing amount from balance leaves
// the balance at or above the variant's floor.
func (v Variant) AllowsWithdrawal(balance, amount decimal.Decimal) bool {
	return balance.Sub(amount).GreaterThanOrEqual(v.Floor)
}

// BearsInterest reports whether the variant accrues interest.
func (v Variant) BearsInterest() bool {
	return v.InterestRate.IsPositive()
}

// Interest computes simple interest on balance over the given whole years:
// balance * rate * years / 100.
func (v Variant) Interest(balance decimal.Decimal, years int) decimal.Decimal {
	return balance.Mul(v.InterestRate).Mul(decimal.NewFromInt(int64(years))).Div(decimal.NewFromInt(100))
}
