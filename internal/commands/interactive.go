package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/account"
	"github.com/teller-dev/teller/internal/auth"
	"github.com/teller-dev/teller/internal/bank"
	"github.com/teller-dev/teller/internal/config"
	"github.com/teller-dev/teller/internal/id"
	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/validate"
)

func newInteractiveCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Run the text-menu front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			reg, err := bank.NewRegistry()
			if err != nil {
				return fmt.Errorf("creating registry: %w", err)
			}
			return runInteractive(cfg, reg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to teller.yaml")

	return cmd
}

// console drives the prompt/retry loops. The core never reads input or
// prints; all rendering and re-prompting happens here.
type console struct {
	in  *bufio.Reader
	out io.Writer
	cfg *config.Config
	reg *bank.Registry
}

func runInteractive(cfg *config.Config, reg *bank.Registry, in io.Reader, out io.Writer) error {
	c := &console{in: bufio.NewReader(in), out: out, cfg: cfg, reg: reg}
	fmt.Fprintf(c.out, "Welcome to %s\n", cfg.Bank.Name)
	for {
		fmt.Fprintln(c.out, "\nMain Menu:")
		fmt.Fprintln(c.out, "1. Create Account")
		fmt.Fprintln(c.out, "2. Login to Account")
		fmt.Fprintln(c.out, "3. Show total accounts created")
		fmt.Fprintln(c.out, "4. Exit")
		choice, err := c.prompt("Choose option: ")
		if err != nil {
			return exitOnEOF(err)
		}
		switch choice {
		case "1":
			if err := c.createAccount(); err != nil {
				return exitOnEOF(err)
			}
		case "2":
			if err := c.login(); err != nil {
				return exitOnEOF(err)
			}
		case "3":
			fmt.Fprintf(c.out, "Total accounts created: %d\n", c.reg.TotalCreated())
		case "4":
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid option. Try again.")
		}
	}
}

// exitOnEOF treats end of input as a normal quit.
func exitOnEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *console) prompt(text string) (string, error) {
	fmt.Fprint(c.out, text)
	line, err := c.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (c *console) promptNonEmpty(text string) (string, error) {
	for {
		line, err := c.prompt(text)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

func (c *console) display(d decimal.Decimal) string {
	return c.cfg.Bank.CurrencySymbol + d.StringFixed(2)
}

func (c *console) createAccount() error {
	fmt.Fprintln(c.out, "=== Create New Account ===")
	fullName, err := c.promptNonEmpty("Enter full name: ")
	if err != nil {
		return err
	}

	var dobStr string
	var dob time.Time
	for {
		dobStr, err = c.promptNonEmpty("Enter Date of Birth (dd/mm/yyyy): ")
		if err != nil {
			return err
		}
		parsed, ok := validate.DateOfBirth(dobStr)
		if ok {
			dob = parsed
			break
		}
		fmt.Fprintln(c.out, "Invalid date of birth. Please enter again.")
	}

	var acctType model.AccountType
	for {
		choice, err := c.prompt("Choose account type (1. Savings, 2. Current): ")
		if err != nil {
			return err
		}
		if choice == "1" {
			acctType = model.AccountTypeSavings
			break
		}
		if choice == "2" {
			acctType = model.AccountTypeCurrent
			break
		}
		fmt.Fprintln(c.out, "Invalid option.")
	}

	var guardian *model.Guardian
	if dob.AddDate(18, 0, 0).After(time.Now()) {
		fmt.Fprintln(c.out, "Applicant is a minor. Guardian details required.")
		gName, err := c.promptNonEmpty("Enter guardian name: ")
		if err != nil {
			return err
		}
		gRelation, err := c.promptNonEmpty("Enter relation with guardian: ")
		if err != nil {
			return err
		}
		guardian = &model.Guardian{Name: gName, Relation: gRelation}
	}

	acct, err := c.reg.Open(bank.OpenParams{
		FullName:    fullName,
		DateOfBirth: dobStr,
		Type:        acctType,
		Guardian:    guardian,
	})
	if err != nil {
		fmt.Fprintf(c.out, "Could not create account: %v\n", err)
		return nil
	}

	for {
		pwd, err := c.prompt("Set a password (min 8 chars, 1 uppercase, 1 lowercase, 1 digit, 1 special): ")
		if err != nil {
			return err
		}
		if acct.SetPassword(pwd) == nil {
			break
		}
		fmt.Fprintln(c.out, "Password does not meet complexity requirements. Try again.")
	}
	for {
		pin, err := c.prompt("Set a 4-digit PIN (must not match DDMM, MMDD, or YYYY of DOB): ")
		if err != nil {
			return err
		}
		if acct.SetPIN(pin) == nil {
			break
		}
		fmt.Fprintln(c.out, "Invalid PIN. Try again.")
	}

	fmt.Fprintln(c.out, "Account successfully created!")
	c.printSnapshot(acct.Snapshot())
	return nil
}

func (c *console) login() error {
	if c.reg.Size() == 0 {
		fmt.Fprintln(c.out, "No accounts found. Please create an account first.")
		return nil
	}
	numStr, err := c.promptNonEmpty("Enter account number to login: ")
	if err != nil {
		return err
	}
	num, perr := id.Parse(numStr)
	if perr != nil {
		fmt.Fprintln(c.out, "Invalid account number format.")
		return nil
	}
	acct, ok := c.reg.Find(num)
	if !ok {
		fmt.Fprintln(c.out, "Account not found.")
		return nil
	}

	sess := auth.NewSession(acct)
	for sess.State() == auth.AwaitingCredentials {
		pwd, err := c.prompt("Enter password: ")
		if err != nil {
			return err
		}
		pin, err := c.prompt("Enter 4-digit PIN: ")
		if err != nil {
			return err
		}
		res := sess.Attempt(pwd, pin)
		switch res.State {
		case auth.Authenticated:
			return c.menu(acct)
		case auth.Locked:
			fmt.Fprintln(c.out, "Account locked due to 3 failed attempts.")
		default:
			fmt.Fprintf(c.out, "Invalid credentials. Attempts left: %d\n", res.AttemptsLeft)
		}
	}
	return nil
}

func (c *console) menu(acct *account.Account) error {
	for {
		fmt.Fprintln(c.out, "\n=== Transaction Menu ===")
		fmt.Fprintln(c.out, "1. Deposit")
		fmt.Fprintln(c.out, "2. Withdraw")
		fmt.Fprintln(c.out, "3. Check Balance")
		fmt.Fprintln(c.out, "4. Change Password")
		fmt.Fprintln(c.out, "5. Change PIN")
		fmt.Fprintln(c.out, "6. View Account Details")
		fmt.Fprintln(c.out, "7. Show last 5 transactions")
		fmt.Fprintln(c.out, "8. Apply interest (savings only)")
		fmt.Fprintln(c.out, "9. Exit")
		opt, err := c.prompt("Choose option: ")
		if err != nil {
			return err
		}
		switch opt {
		case "1":
			if err := c.deposit(acct); err != nil {
				return err
			}
		case "2":
			if err := c.withdraw(acct); err != nil {
				return err
			}
		case "3":
			bal, err := acct.Balance()
			if err != nil {
				fmt.Fprintf(c.out, "%v\n", err)
				continue
			}
			fmt.Fprintf(c.out, "Current balance: %s\n", c.display(bal))
		case "4":
			if err := c.changePassword(acct); err != nil {
				return err
			}
		case "5":
			if err := c.changePIN(acct); err != nil {
				return err
			}
		case "6":
			c.printSnapshot(acct.Snapshot())
		case "7":
			entries, err := acct.LastTransactions(5)
			if errors.Is(err, account.ErrNoTransactions) {
				fmt.Fprintln(c.out, "No transactions yet.")
				continue
			}
			fmt.Fprintln(c.out, "=== Last 5 Transactions ===")
			for _, e := range entries {
				fmt.Fprintln(c.out, e.String())
			}
		case "8":
			if err := c.applyInterest(acct); err != nil {
				return err
			}
		case "9":
			fmt.Fprintln(c.out, "Exiting. Thank you!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid menu option.")
		}
	}
}

func (c *console) deposit(acct *account.Account) error {
	amtStr, err := c.prompt("Enter amount to deposit: ")
	if err != nil {
		return err
	}
	amt, perr := decimal.NewFromString(amtStr)
	if perr != nil {
		fmt.Fprintln(c.out, "Invalid amount.")
		return nil
	}
	desc, err := c.prompt("Optional description (press enter to skip): ")
	if err != nil {
		return err
	}
	var opErr error
	if desc == "" {
		opErr = acct.Deposit(amt)
	} else {
		opErr = acct.DepositWithNote(amt, desc)
	}
	if opErr != nil {
		fmt.Fprintf(c.out, "Deposit failed: %v\n", opErr)
		return nil
	}
	fmt.Fprintf(c.out, "%s deposited. New balance: %s\n", c.display(amt), c.display(acct.Snapshot().Balance))
	return nil
}

func (c *console) withdraw(acct *account.Account) error {
	amtStr, err := c.prompt("Enter amount to withdraw: ")
	if err != nil {
		return err
	}
	amt, perr := decimal.NewFromString(amtStr)
	if perr != nil {
		fmt.Fprintln(c.out, "Invalid amount.")
		return nil
	}
	purpose, err := c.prompt("Optional purpose (press enter to skip): ")
	if err != nil {
		return err
	}
	var opErr error
	if purpose == "" {
		opErr = acct.Withdraw(amt)
	} else {
		opErr = acct.WithdrawForPurpose(amt, purpose)
	}
	if opErr != nil {
		fmt.Fprintf(c.out, "Withdrawal failed: %v\n", opErr)
		return nil
	}
	fmt.Fprintf(c.out, "%s withdrawn. New balance: %s\n", c.display(amt), c.display(acct.Snapshot().Balance))
	return nil
}

func (c *console) changePassword(acct *account.Account) error {
	for {
		pwd, err := c.prompt("Enter new password: ")
		if err != nil {
			return err
		}
		if acct.ChangePassword(pwd) == nil {
			fmt.Fprintln(c.out, "Password updated successfully.")
			return nil
		}
		fmt.Fprintln(c.out, "Password does not meet complexity requirements. Try again.")
	}
}

func (c *console) changePIN(acct *account.Account) error {
	for {
		pin, err := c.prompt("Enter new 4-digit PIN: ")
		if err != nil {
			return err
		}
		if acct.ChangePIN(pin) == nil {
			fmt.Fprintln(c.out, "PIN updated successfully.")
			return nil
		}
		fmt.Fprintln(c.out, "Invalid PIN. It must be 4 digits and not match DOB patterns (DDMM, MMDD, YYYY). Try again.")
	}
}

func (c *console) applyInterest(acct *account.Account) error {
	if !acct.Variant().BearsInterest() {
		fmt.Fprintln(c.out, "Interest application is only for savings accounts.")
		return nil
	}
	yrsStr, err := c.prompt("Enter number of years to apply simple interest: ")
	if err != nil {
		return err
	}
	yrs, perr := strconv.Atoi(yrsStr)
	if perr != nil {
		fmt.Fprintln(c.out, "Invalid number.")
		return nil
	}
	interest, opErr := acct.ApplyInterest(yrs)
	if opErr != nil {
		fmt.Fprintf(c.out, "%v\n", opErr)
		return nil
	}
	if yrs <= 0 {
		return nil
	}
	fmt.Fprintf(c.out, "Interest %s added. New balance: %s\n", c.display(interest), c.display(acct.Snapshot().Balance))
	return nil
}

func (c *console) printSnapshot(snap model.Snapshot) {
	fmt.Fprintln(c.out, "=== Account Details ===")
	fmt.Fprintf(c.out, "Account Number: %d\n", snap.AccountNumber)
	fmt.Fprintf(c.out, "Name: %s\n", snap.FirstName)
	fmt.Fprintf(c.out, "DOB: %s\n", snap.DateOfBirth.Format(validate.DOBLayout))
	fmt.Fprintf(c.out, "Age: %d\n", snap.Age)
	if snap.Minor() && snap.Guardian != nil {
		fmt.Fprintf(c.out, "Guardian: %s (%s)\n", snap.Guardian.Name, snap.Guardian.Relation)
	}
	fmt.Fprintf(c.out, "Balance: %s\n", c.display(snap.Balance))
}
