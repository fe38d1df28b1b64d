// Package account implements the bank-account entity: identity, credential
// management, balance mutation under the variant policy, and the per-account
// transaction ledger. Every successful mutating operation appends exactly
// one ledger entry; the annotated deposit/withdraw forms append a second
// entry carrying the free-text reason.
package account

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/validate"
)

// Account is a single bank account. It is not safe for concurrent use;
// the system processes one request at a time.
type Account struct {
	number    int64
	fullName  string
	firstName string
	dob       time.Time
	guardian  *model.Guardian
	balance   decimal.Decimal
	password  string
	pin       string
	variant   model.Variant
	ledger    *ledger.Ledger
}

// New constructs an account with a zero balance and no credentials. The
// guardian may be nil; the registry enforces its presence for minors.
// Credentials must be set via SetPassword and SetPIN before the account
// accepts transactions.
func New(number int64, fullName string, dob time.Time, variant model.Variant, guardian *model.Guardian, node *snowflake.Node) *Account {
	fullName = strings.TrimSpace(fullName)
	return &Account{
		number:    number,
		fullName:  fullName,
		firstName: firstName(fullName),
		dob:       dob,
		guardian:  guardian,
		variant:   variant,
		ledger:    ledger.New(node),
	}
}

// firstName is the first whitespace-delimited token of the full name.
func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}

// Number returns the immutable 8-digit account number.
func (a *Account) Number() int64 { return a.number }

// FirstName returns the display name. The full name is never exposed.
func (a *Account) FirstName() string { return a.firstName }

// DateOfBirth returns the holder's birth date.
func (a *Account) DateOfBirth() time.Time { return a.dob }

// Age returns the holder's age in whole years as of now.
func (a *Account) Age() int { return ageAt(a.dob, time.Now()) }

// Variant returns the policy governing this account.
func (a *Account) Variant() model.Variant { return a.variant }

// Type returns the account type.
func (a *Account) Type() model.AccountType { return a.variant.Type }

// Ledger returns the account's transaction log. Collaborators append
// protocol events (creation, login outcomes) through it.
func (a *Account) Ledger() *ledger.Ledger { return a.ledger }

// CredentialsSet reports whether both password and PIN have been set.
func (a *Account) CredentialsSet() bool {
	return a.password != "" && a.pin != ""
}

// CredentialsMatch reports whether both supplied credentials equal the
// stored ones. It never reveals which one mismatched, and always fails
// while credentials are incomplete.
func (a *Account) CredentialsMatch(password, pin string) bool {
	if !a.CredentialsSet() {
		return false
	}
	return password == a.password && pin == a.pin
}

// SetPassword sets the initial password. It rejects a password that fails
// the complexity policy, and refuses to overwrite one already set; use
// ChangePassword for that.
func (a *Account) SetPassword(password string) error {
	if a.password != "" {
		return ErrPasswordSet
	}
	if !validate.Password(password) {
		return ErrInvalidPassword
	}
	a.password = password
	return nil
}

// SetPIN sets the initial PIN, validated against the holder's date of birth.
func (a *Account) SetPIN(pin string) error {
	if a.pin != "" {
		return ErrPINSet
	}
	if !validate.PIN(pin, a.dob) {
		return ErrInvalidPIN
	}
	a.pin = pin
	return nil
}

// ChangePassword replaces the password after validation and records the
// change in the ledger.
func (a *Account) ChangePassword(password string) error {
	if !validate.Password(password) {
		return ErrInvalidPassword
	}
	a.password = password
	a.ledger.Append("Password changed")
	return nil
}

// ChangePIN replaces the PIN after validation and records the change.
func (a *Account) ChangePIN(pin string) error {
	if !validate.PIN(pin, a.dob) {
		return ErrInvalidPIN
	}
	a.pin = pin
	a.ledger.Append("PIN changed")
	return nil
}

// Snapshot returns a read view of the account: first name only, guardian
// details only for minors. It is a pure projection and appends nothing.
func (a *Account) Snapshot() model.Snapshot {
	s := model.Snapshot{
		AccountNumber: a.number,
		FirstName:     a.firstName,
		DateOfBirth:   a.dob,
		Age:           a.Age(),
		Balance:       a.balance,
		Type:          a.variant.Type,
	}
	if s.Age < 18 && a.guardian != nil {
		g := *a.guardian
		s.Guardian = &g
	}
	return s
}

// ageAt computes whole years elapsed from dob to now.
func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if dob.AddDate(years, 0, 0).After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
