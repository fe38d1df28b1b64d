package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/bank"
	"github.com/teller-dev/teller/internal/config"
	"github.com/teller-dev/teller/internal/model"
)

func testRegistry(t *testing.T) *bank.Registry {
	t.Helper()
	reg, err := bank.NewRegistry()
	require.NoError(t, err)
	return reg
}

// run feeds a scripted stdin to the console and returns everything printed.
func run(t *testing.T, reg *bank.Registry, script string) string {
	t.Helper()
	var out strings.Builder
	require.NoError(t, runInteractive(config.Default(), reg, strings.NewReader(script), &out))
	return out.String()
}

func TestCreateAccountFlow(t *testing.T) {
	reg := testRegistry(t)

	// Invalid password and PIN once each; the prompt loop retries.
	script := strings.Join([]string{
		"1",
		"Asha Rao",
		"15/08/1990",
		"1",
		"weak",
		"Str0ng!Pass",
		"1508",
		"4321",
		"4",
	}, "\n") + "\n"

	out := run(t, reg, script)
	assert.Contains(t, out, "Password does not meet complexity requirements.")
	assert.Contains(t, out, "Invalid PIN.")
	assert.Contains(t, out, "Account successfully created!")
	assert.Contains(t, out, "Name: Asha")
	assert.NotContains(t, out, "Asha Rao", "full name is never rendered")
	assert.Equal(t, 1, reg.TotalCreated())
}

func TestLoginAndTransactionMenu(t *testing.T) {
	reg := testRegistry(t)
	acct, err := reg.Open(bank.OpenParams{FullName: "Asha Rao", DateOfBirth: "15/08/1990", Type: model.AccountTypeSavings})
	require.NoError(t, err)
	require.NoError(t, acct.SetPassword("Str0ng!Pass"))
	require.NoError(t, acct.SetPIN("4321"))

	script := fmt.Sprintf("2\n%d\nStr0ng!Pass\n4321\n1\n600\n\n3\n9\n4\n", acct.Number())
	out := run(t, reg, script)

	assert.Contains(t, out, "₹600.00 deposited. New balance: ₹600.00")
	assert.Contains(t, out, "Current balance: ₹600.00")
	assert.Contains(t, out, "Exiting. Thank you!")
}

func TestLoginLocksAfterThreeFailures(t *testing.T) {
	reg := testRegistry(t)
	acct, err := reg.Open(bank.OpenParams{FullName: "Asha Rao", DateOfBirth: "15/08/1990", Type: model.AccountTypeSavings})
	require.NoError(t, err)
	require.NoError(t, acct.SetPassword("Str0ng!Pass"))
	require.NoError(t, acct.SetPIN("4321"))

	script := fmt.Sprintf("2\n%d\nbad\n0000\nbad\n0000\nbad\n0000\n4\n", acct.Number())
	out := run(t, reg, script)

	assert.Contains(t, out, "Invalid credentials. Attempts left: 2")
	assert.Contains(t, out, "Invalid credentials. Attempts left: 1")
	assert.Contains(t, out, "Account locked due to 3 failed attempts.")
	assert.NotContains(t, out, "Transaction Menu")
}

func TestLoginWithoutAccounts(t *testing.T) {
	out := run(t, testRegistry(t), "2\n4\n")
	assert.Contains(t, out, "No accounts found. Please create an account first.")
}

func TestEndOfInputQuitsCleanly(t *testing.T) {
	out := run(t, testRegistry(t), "3\n")
	assert.Contains(t, out, "Total accounts created: 0")
}
