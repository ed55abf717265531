// Package core defines the ledger's domain types: fixed-point amounts,
// groups, memberships, expenses and settlements.
//
// All amounts are a single 6-decimal fixed-point asset stored as signed
// int64 micro-units (1.000000 == 1_000_000 units).
package core

import (
	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits carried by every Amount.
const Decimals = 6

// Amount is a signed fixed-point value in micro-units.
type Amount int64

// ParseAmount converts a decimal string ("150.000000", "0.5") into
// micro-units. More than six fractional digits, a non-numeric string or
// an empty string is rejected with ErrInvalidAmount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	shifted := d.Shift(Decimals)
	if !shifted.IsInteger() {
		return 0, ErrInvalidAmount
	}
	units := shifted.IntPart()
	if !shifted.Equal(decimal.NewFromInt(units)) {
		// IntPart silently truncates values outside int64 range.
		return 0, ErrInvalidAmount
	}
	return Amount(units), nil
}

// String renders the amount with all six decimal places ("-50.000000").
func (a Amount) String() string {
	return decimal.New(int64(a), -Decimals).StringFixed(Decimals)
}

// Validate rejects zero and negative amounts. Balances may be negative,
// but every expense and settlement amount must be strictly positive.
func (a Amount) Validate() error {
	if a <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
