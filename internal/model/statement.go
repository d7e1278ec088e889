package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance type codes.
const (
	BalanceOpening = "PRCD"
	BalanceClosing = "CLBD"
)

// AccountTypeCurrent is the account type code for a current account.
const AccountTypeCurrent = "CACC"

// Header is the message level header of a statement document.
type Header struct {
	MessageID      string
	CreatedAt      time.Time
	PageNumber     int
	LastPage       bool
	AdditionalInfo string
}

// Account is the statemented account.
type Account struct {
	IBAN     string
	Type     string
	Currency string
	Name     string
	Owner    Party
	Servicer Agent
}

// Balance is a dated, signed account balance.
type Balance struct {
	Code     string
	Amount   decimal.Decimal // signed
	Currency string
	Date     time.Time
}

// Totals counts entries and sums their absolute amounts.
type Totals struct {
	Count int
	Sum   decimal.Decimal
}

// Summary holds credit and debit totals for a statement.
type Summary struct {
	Credit Totals
	Debit  Totals
}

// Count returns the number of entries.
func (s Summary) Count() int {
	return s.Credit.Count + s.Debit.Count
}

// Sum returns the sum of absolute entry amounts.
func (s Summary) Sum() decimal.Decimal {
	return s.Credit.Sum.Add(s.Debit.Sum)
}

// Net returns credits minus debits.
func (s Summary) Net() decimal.Decimal {
	return s.Credit.Sum.Sub(s.Debit.Sum)
}

// NetDirection is CRDT when the net amount is not negative.
func (s Summary) NetDirection() Direction {
	if s.Net().IsNegative() {
		return Debit
	}
	return Credit
}

// Statement is the full statement document.
type Statement struct {
	Header        Header
	ID            string
	ElectronicSeq int
	LegalSeq      int
	CreatedAt     time.Time
	From          time.Time
	To            time.Time
	Account       Account
	Opening       Balance
	Closing       Balance
	Entries       []Entry
	Summary       Summary
}
