package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/ledger"
)

// ready gates transactional operations on complete credentials.
func (a *Account) ready() error {
	if !a.CredentialsSet() {
		return ErrCredentialsNotSet
	}
	return nil
}

// Deposit adds amount to the balance. Non-positive amounts are rejected
// without touching the balance or the ledger.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := a.ready(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.ledger.Append("Deposit: " + amount.StringFixed(2))
	return nil
}

// DepositWithNote deposits amount and records a second ledger entry
// carrying the free-text note. Both entries are kept.
func (a *Account) DepositWithNote(amount decimal.Decimal, note string) error {
	if err := a.Deposit(amount); err != nil {
		return err
	}
	a.ledger.Append("Deposit: " + amount.StringFixed(2) + " " + note)
	return nil
}

// Withdraw subtracts amount from the balance if the variant's constraint
// allows it. A denied withdrawal mutates nothing.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.ready(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !a.variant.AllowsWithdrawal(a.balance, amount) {
		return ErrWithdrawalDenied
	}
	a.balance = a.balance.Sub(amount)
	a.ledger.Append("Withdraw: " + amount.StringFixed(2))
	return nil
}

// WithdrawForPurpose withdraws amount and records a second ledger entry
// naming the purpose.
func (a *Account) WithdrawForPurpose(amount decimal.Decimal, purpose string) error {
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	a.ledger.Append("Withdraw: " + amount.StringFixed(2) + " | Purpose: " + purpose)
	return nil
}

// Balance reports the current balance. Every balance check is itself a
// ledger event.
func (a *Account) Balance() (decimal.Decimal, error) {
	if err := a.ready(); err != nil {
		return decimal.Decimal{}, err
	}
	a.ledger.Append("Balance inquiry")
	return a.balance, nil
}

// ApplyInterest accrues simple interest for the given number of years on
// an interest-bearing account. years <= 0 is a no-op. Returns the interest
// amount added.
func (a *Account) ApplyInterest(years int) (decimal.Decimal, error) {
	if err := a.ready(); err != nil {
		return decimal.Decimal{}, err
	}
	if !a.variant.BearsInterest() {
		return decimal.Decimal{}, ErrNoInterest
	}
	if years <= 0 {
		return decimal.Zero, nil
	}
	interest := a.variant.Interest(a.balance, years)
	a.balance = a.balance.Add(interest)
	a.ledger.Append(fmt.Sprintf("Interest applied: %s for %d years", interest.StringFixed(2), years))
	return interest, nil
}

// LastTransactions returns the most recent min(n, size) ledger entries in
// chronological order. An empty ledger yields ErrNoTransactions, an
// ordinary outcome the caller renders as "no transactions yet".
func (a *Account) LastTransactions(n int) ([]ledger.Entry, error) {
	if a.ledger.Size() == 0 {
		return nil, ErrNoTransactions
	}
	return a.ledger.LastN(n), nil
}
