package account

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/validate"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testAccount builds an adult account with credentials already set.
func testAccount(t *testing.T, v model.Variant) *Account {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	dob, ok := validate.DateOfBirth("15/08/1990")
	require.True(t, ok)

	a := New(41234567, "Asha Rao", dob, v, nil, node)
	require.NoError(t, a.SetPassword("Str0ng!Pass"))
	require.NoError(t, a.SetPIN("4321"))
	return a
}

func TestFirstNameDerivation(t *testing.T) {
	a := testAccount(t, model.Savings())
	assert.Equal(t, "Asha", a.FirstName())
	assert.Equal(t, int64(41234567), a.Number())
}

func TestDepositRejectsNonPositive(t *testing.T) {
	a := testAccount(t, model.Savings())

	for _, amt := range []string{"0", "-1", "-250.50"} {
		err := a.Deposit(dec(amt))
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %s", amt)
	}
	assert.True(t, a.Snapshot().Balance.IsZero(), "balance unchanged")
	assert.Equal(t, 0, a.Ledger().Size(), "no ledger entry on rejection")
}

func TestDepositAddsAndLogs(t *testing.T) {
	a := testAccount(t, model.Savings())

	require.NoError(t, a.Deposit(dec("250.50")))
	assert.True(t, a.Snapshot().Balance.Equal(dec("250.50")))

	entries := a.Ledger().All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Deposit: 250.50", entries[0].Text)
}

func TestDepositWithNoteAppendsTwoEntries(t *testing.T) {
	a := testAccount(t, model.Savings())

	require.NoError(t, a.DepositWithNote(dec("100"), "birthday gift"))

	entries := a.Ledger().All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Deposit: 100.00", entries[0].Text)
	assert.Equal(t, "Deposit: 100.00 birthday gift", entries[1].Text)
}

func TestDepositWithNoteInvalidAmountLogsNothing(t *testing.T) {
	a := testAccount(t, model.Savings())

	err := a.DepositWithNote(dec("-5"), "oops")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 0, a.Ledger().Size())
}

func TestSavingsWithdrawKeepsMinimumBalance(t *testing.T) {
	a := testAccount(t, model.Savings())
	require.NoError(t, a.Deposit(dec("1000")))

	err := a.Withdraw(dec("501"))
	assert.ErrorIs(t, err, ErrWithdrawalDenied, "would leave 499, below the 500 floor")
	assert.True(t, a.Snapshot().Balance.Equal(dec("1000")), "denied withdrawal mutates nothing")

	require.NoError(t, a.Withdraw(dec("500")))
	assert.True(t, a.Snapshot().Balance.Equal(dec("500")))

	err = a.Withdraw(dec("0.01"))
	assert.ErrorIs(t, err, ErrWithdrawalDenied)
}

func TestSavingsBalanceNeverBelowFloor(t *testing.T) {
	a := testAccount(t, model.Savings())
	require.NoError(t, a.Deposit(dec("1000")))

	// A run of withdrawals may fail, but the floor holds throughout.
	for i := 0; i < 10; i++ {
		_ = a.Withdraw(dec("200"))
		assert.True(t, a.Snapshot().Balance.GreaterThanOrEqual(dec("500")))
	}
}

func TestCurrentWithdrawHonorsOverdraft(t *testing.T) {
	a := testAccount(t, model.Current())

	require.NoError(t, a.Withdraw(dec("5000")), "overdraft down to -5000 is allowed")
	assert.True(t, a.Snapshot().Balance.Equal(dec("-5000")))

	err := a.Withdraw(dec("0.01"))
	assert.ErrorIs(t, err, ErrWithdrawalDenied)
	assert.True(t, a.Snapshot().Balance.Equal(dec("-5000")))
}

func TestWithdrawRejectsNonPositive(t *testing.T) {
	a := testAccount(t, model.Current())

	assert.ErrorIs(t, a.Withdraw(dec("0")), ErrInvalidAmount)
	assert.ErrorIs(t, a.Withdraw(dec("-10")), ErrInvalidAmount)
	assert.Equal(t, 0, a.Ledger().Size())
}

func TestWithdrawForPurposeAppendsTwoEntries(t *testing.T) {
	a := testAccount(t, model.Current())
	require.NoError(t, a.Deposit(dec("300")))

	require.NoError(t, a.WithdrawForPurpose(dec("120"), "rent"))

	entries := a.Ledger().All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Withdraw: 120.00", entries[1].Text)
	assert.Equal(t, "Withdraw: 120.00 | Purpose: rent", entries[2].Text)
}

func TestBalanceLogsInquiry(t *testing.T) {
	a := testAccount(t, model.Savings())
	require.NoError(t, a.Deposit(dec("42")))

	bal, err := a.Balance()
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("42")))

	entries := a.Ledger().All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Balance inquiry", entries[1].Text)
}

func TestApplyInterest(t *testing.T) {
	a := testAccount(t, model.Savings())
	require.NoError(t, a.Deposit(dec("1000")))

	interest, err := a.ApplyInterest(2)
	require.NoError(t, err)
	assert.True(t, interest.Equal(dec("80")), "1000 * 4%% * 2 years = 80, got %s", interest)
	assert.True(t, a.Snapshot().Balance.Equal(dec("1080")))

	entries := a.Ledger().All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Interest applied: 80.00 for 2 years", entries[1].Text)
}

func TestApplyInterestZeroYearsIsNoOp(t *testing.T) {
	a := testAccount(t, model.Savings())
	require.NoError(t, a.Deposit(dec("1000")))

	interest, err := a.ApplyInterest(0)
	require.NoError(t, err)
	assert.True(t, interest.IsZero())
	assert.True(t, a.Snapshot().Balance.Equal(dec("1000")))
	assert.Equal(t, 1, a.Ledger().Size(), "no interest entry appended")

	_, err = a.ApplyInterest(-3)
	require.NoError(t, err)
	assert.True(t, a.Snapshot().Balance.Equal(dec("1000")))
}

func TestApplyInterestCurrentAccount(t *testing.T) {
	a := testAccount(t, model.Current())
	_, err := a.ApplyInterest(2)
	assert.ErrorIs(t, err, ErrNoInterest)
}

func TestOperationsRequireCredentials(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	dob, _ := validate.DateOfBirth("15/08/1990")
	a := New(41234567, "Asha Rao", dob, model.Savings(), nil, node)

	assert.ErrorIs(t, a.Deposit(dec("10")), ErrCredentialsNotSet)
	assert.ErrorIs(t, a.Withdraw(dec("10")), ErrCredentialsNotSet)
	_, err = a.Balance()
	assert.ErrorIs(t, err, ErrCredentialsNotSet)
	_, err = a.ApplyInterest(1)
	assert.ErrorIs(t, err, ErrCredentialsNotSet)

	assert.False(t, a.CredentialsMatch("", ""), "incomplete credentials never match")
}

func TestSetPasswordOnlyOnce(t *testing.T) {
	a := testAccount(t, model.Savings())
	assert.ErrorIs(t, a.SetPassword("An0ther!Pass"), ErrPasswordSet)
	assert.ErrorIs(t, a.SetPIN("8642"), ErrPINSet)
}

func TestChangePassword(t *testing.T) {
	a := testAccount(t, model.Savings())

	assert.ErrorIs(t, a.ChangePassword("weak"), ErrInvalidPassword)
	assert.Equal(t, 0, a.Ledger().Size())

	require.NoError(t, a.ChangePassword("N3w!Secret"))
	assert.True(t, a.CredentialsMatch("N3w!Secret", "4321"))

	entries := a.Ledger().All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Password changed", entries[0].Text)
}

func TestChangePIN(t *testing.T) {
	a := testAccount(t, model.Savings())

	assert.ErrorIs(t, a.ChangePIN("1508"), ErrInvalidPIN, "ddmm of 15/08/1990")
	assert.ErrorIs(t, a.ChangePIN("0815"), ErrInvalidPIN, "mmdd of 15/08/1990")
	assert.ErrorIs(t, a.ChangePIN("1990"), ErrInvalidPIN, "birth year")

	require.NoError(t, a.ChangePIN("0042"))
	assert.True(t, a.CredentialsMatch("Str0ng!Pass", "0042"))
	assert.Equal(t, "PIN changed", a.Ledger().All()[0].Text)
}

func TestSnapshotShowsFirstNameOnly(t *testing.T) {
	a := testAccount(t, model.Savings())
	snap := a.Snapshot()

	assert.Equal(t, "Asha", snap.FirstName)
	assert.Equal(t, int64(41234567), snap.AccountNumber)
	assert.Equal(t, model.AccountTypeSavings, snap.Type)
	assert.Nil(t, snap.Guardian, "adults carry no guardian")
	assert.False(t, snap.Minor())
}

func TestSnapshotIncludesGuardianForMinor(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	dob := time.Now().AddDate(-10, 0, 0)
	guardian := &model.Guardian{Name: "Ravi Rao", Relation: "father"}

	a := New(55555555, "Kiran Rao", dob, model.Savings(), guardian, node)
	snap := a.Snapshot()

	assert.Equal(t, 10, snap.Age)
	assert.True(t, snap.Minor())
	require.NotNil(t, snap.Guardian)
	assert.Equal(t, "Ravi Rao", snap.Guardian.Name)
	assert.Equal(t, "father", snap.Guardian.Relation)
}

func TestLastTransactions(t *testing.T) {
	a := testAccount(t, model.Savings())

	_, err := a.LastTransactions(5)
	assert.ErrorIs(t, err, ErrNoTransactions)

	for _, amt := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, a.Deposit(dec(amt)))
	}

	entries, err := a.LastTransactions(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Deposit: 3.00", entries[0].Text)
	assert.Equal(t, "Deposit: 4.00", entries[1].Text)
	assert.Equal(t, "Deposit: 5.00", entries[2].Text)
}

func TestAge(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	dob := time.Now().AddDate(-30, 0, -1)
	a := New(10000001, "Old Enough", dob, model.Current(), nil, node)
	assert.Equal(t, 30, a.Age())

	dob = time.Now().AddDate(-30, 0, 1)
	a = New(10000002, "Almost Thirty", dob, model.Current(), nil, node)
	assert.Equal(t, 29, a.Age(), "birthday not reached yet")
}
