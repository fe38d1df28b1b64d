package account

import "errors"

// Domain errors. All of these are ordinary, recoverable outcomes the front
// end reports and re-prompts on; none is fatal.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrWithdrawalDenied  = errors.New("withdrawal denied by account policy")
	ErrInvalidPassword   = errors.New("password does not meet complexity requirements")
	ErrInvalidPIN        = errors.New("pin must be 4 digits and not match date-of-birth patterns")
	ErrPasswordSet       = errors.New("password already set")
	ErrPINSet            = errors.New("pin already set")
	ErrCredentialsNotSet = errors.New("credentials not set")
	ErrNoInterest        = errors.New("account type does not bear interest")
	ErrNoTransactions    = errors.New("no transactions yet")
)
