// Package auth implements the bounded-attempt credential check guarding
// access to an account's operations: three tries for the password+PIN pair,
// then the session locks.
package auth

import "github.com/teller-dev/teller/internal/account"

// MaxAttempts is how many consecutive mismatches a session tolerates.
const MaxAttempts = 3

// State is the session's position in the login protocol.
type State int

const (
	AwaitingCredentials State = iota
	Authenticated
	Locked
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Locked:
		return "locked"
	default:
		return "awaiting credentials"
	}
}

// Result reports the outcome of one attempt.
type Result struct {
	State        State
	AttemptsLeft int
}

// Session runs the login protocol against one account. Locking is a
// session-level statement: it ends this login flow but marks nothing on
// the account itself, so a later session starts fresh.
type Session struct {
	acct     *account.Account
	attempts int
	state    State
}

// NewSession starts a login flow for acct.
func NewSession(acct *account.Account) *Session {
	return &Session{acct: acct}
}

// State returns the current protocol state.
func (s *Session) State() State { return s.state }

// Attempt checks one password+PIN pair. Both must match exactly; the
// result never says which one was wrong. Every outcome is recorded in the
// account's ledger. After the third consecutive mismatch the session
// transitions to Locked and all further attempts fail.
func (s *Session) Attempt(password, pin string) Result {
	switch s.state {
	case Authenticated:
		return Result{State: Authenticated, AttemptsLeft: MaxAttempts - s.attempts}
	case Locked:
		return Result{State: Locked}
	}

	if s.acct.CredentialsMatch(password, pin) {
		s.state = Authenticated
		s.acct.Ledger().Append("Successful login")
		return Result{State: Authenticated, AttemptsLeft: MaxAttempts - s.attempts}
	}

	s.attempts++
	s.acct.Ledger().Append("Failed login attempt")
	if s.attempts >= MaxAttempts {
		s.state = Locked
		s.acct.Ledger().Append("Account locked after 3 failed attempts")
		return Result{State: Locked}
	}
	return Result{State: AwaitingCredentials, AttemptsLeft: MaxAttempts - s.attempts}
}
