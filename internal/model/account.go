package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts by the policy governing them.
type AccountType string

const (
	AccountTypeSavings AccountType = "savings"
	AccountTypeCurrent AccountType = "current"
)

// Guardian identifies the responsible adult attached to a minor's account.
type Guardian struct {
	Name     string
	Relation string
}

// Snapshot is a read view of an account safe to hand to a renderer: it
// carries the first name only, never the full name, and guardian details
// only when the holder is a minor.
type Snapshot struct {
	AccountNumber int64
	FirstName     string
	DateOfBirth   time.Time
	Age           int
	Guardian      *Guardian
	Balance       decimal.Decimal
	Type          AccountType
}

// Minor reports whether the snapshot belongs to an account holder under 18.
func (s Snapshot) Minor() bool {
	return s.Age < 18
}
