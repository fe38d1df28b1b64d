// Package bank implements the in-memory account registry: account creation,
// number generation with collision retry, and lookup.
package bank

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/teller-dev/teller/internal/account"
	"github.com/teller-dev/teller/internal/id"
	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/validate"
)

var (
	ErrInvalidName      = errors.New("full name must not be empty")
	ErrInvalidDOB       = errors.New("invalid date of birth")
	ErrUnknownType      = errors.New("unknown account type")
	ErrGuardianRequired = errors.New("guardian details required for minors")
)

// OpenParams are the inputs to account creation. Credentials are set on the
// returned account afterwards; the account refuses transactions until both
// password and PIN are in place.
type OpenParams struct {
	FullName    string
	DateOfBirth string // dd/mm/yyyy
	Type        model.AccountType
	Guardian    *model.Guardian
}

// Registry is the in-memory collection of accounts keyed by account number.
// The created counter is monotonic and independent of the live count.
type Registry struct {
	rng      *rand.Rand
	node     *snowflake.Node
	accounts map[int64]*account.Account
	created  int
}

// NewRegistry creates an empty registry.
func NewRegistry() (*Registry, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("creating snowflake node: %w", err)
	}
	return &Registry{
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		node:     node,
		accounts: make(map[int64]*account.Account),
	}, nil
}

// Open validates the params, assigns a unique account number, stores the
// account, and records the creation in its ledger.
func (r *Registry) Open(p OpenParams) (*account.Account, error) {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		return nil, ErrInvalidName
	}
	dob, ok := validate.DateOfBirth(p.DateOfBirth)
	if !ok {
		return nil, ErrInvalidDOB
	}
	variant, ok := model.VariantFor(p.Type)
	if !ok {
		return nil, ErrUnknownType
	}

	guardian := p.Guardian
	if minor(dob) {
		if guardian == nil || strings.TrimSpace(guardian.Name) == "" || strings.TrimSpace(guardian.Relation) == "" {
			return nil, ErrGuardianRequired
		}
	} else {
		// Guardian info is attached iff the holder is a minor at creation.
		guardian = nil
	}

	num := r.uniqueNumber()
	acct := account.New(num, name, dob, variant, guardian, r.node)
	r.accounts[num] = acct
	r.created++
	acct.Ledger().Append("Account created")
	return acct, nil
}

// Find looks up an account by number. A miss is a normal outcome.
func (r *Registry) Find(number int64) (*account.Account, bool) {
	a, ok := r.accounts[number]
	return a, ok
}

// TotalCreated returns how many accounts were ever created.
func (r *Registry) TotalCreated() int { return r.created }

// Size returns the number of accounts currently held.
func (r *Registry) Size() int { return len(r.accounts) }

// uniqueNumber draws account numbers until one misses the existing keys.
func (r *Registry) uniqueNumber() int64 {
	for {
		n := id.NewAccountNumber(r.rng)
		if _, taken := r.accounts[n]; !taken {
			return n
		}
	}
}

func minor(dob time.Time) bool {
	return dob.AddDate(18, 0, 0).After(time.Now())
}
