package account

import (
	"time"
)

// BCDUnset is the sentinel for an account that has not yet been assigned a
// billing cycle day. The first invoice run derives one and the account
// service persists it.
const BCDUnset = 0

// Account holds the billing-relevant slice of an account.
type Account struct {
	// ID is the unique identifier for the account
	ID string `json:"id"`

	// BillCycleDay anchors recurring billing for ACCOUNT-aligned plans,
	// 1..31 or BCDUnset
	BillCycleDay int `json:"bill_cycle_day"`

	// Timezone is the IANA timezone name used to localize instants before
	// extracting calendar days
	Timezone string `json:"timezone"`

	// Currency is the lowercase 3 letter ISO currency code
	Currency string `json:"currency"`
}

// Location resolves the account timezone, defaulting to UTC when unset.
func (a *Account) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(a.Timezone)
}

// HasBillCycleDay reports whether the account already has an assigned BCD.
func (a *Account) HasBillCycleDay() bool {
	return a.BillCycleDay != BCDUnset
}

// Bundle groups subscriptions that are billed together.
type Bundle struct {
	// ID is the unique identifier for the bundle
	ID string `json:"id"`

	// AccountID is the owning account
	AccountID string `json:"account_id"`

	// StartDate is when the bundle's first subscription started (UTC)
	StartDate time.Time `json:"start_date"`
}
