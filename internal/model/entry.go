package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the credit/debit indicator of an entry.
type Direction string

const (
	Credit Direction = "CRDT"
	Debit  Direction = "DBIT"
)

// EntryStatusBooked is the only status the ledger export produces.
const EntryStatusBooked = "BOOK"

// Money is an amount in a currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// Exchange describes a currency conversion applied to an entry.
type Exchange struct {
	Source string
	Target string
	Rate   decimal.Decimal
}

// Agent is a financial institution acting for a party.
type Agent struct {
	BIC     string
	Name    string
	Country string
}

// Party is a debtor or creditor.
type Party struct {
	Name    string
	Address []string
}

// Participant is one side of an entry: the party, its account and its agent.
type Participant struct {
	Party Party
	IBAN  string // empty when unknown
	Agent *Agent // nil when unknown
	Owner bool   // true for the statement's account owner
}

// BankCode is a proprietary bank transaction code.
type BankCode struct {
	Proprietary string
	Issuer      string
}

// EntryRefs are the references carried in the transaction details.
type EntryRefs struct {
	AccountServicer string
	TransactionID   string
}

// Entry is one statement entry built from a SourceRecord.
type Entry struct {
	Seq            int
	BookingDate    time.Time
	ValueDate      time.Time
	Amount         decimal.Decimal // signed: credit positive, debit negative
	Currency       string
	Direction      Direction
	Status         string
	Reversal       bool
	Code           BankCode
	AdditionalInfo string
	Debtor         Participant
	Creditor       Participant
	Instructed     *Money    // original currency amount, foreign rows only
	CounterValue   *Money    // payment currency amount, foreign rows only
	ExchangeRate   *Exchange // foreign rows only
	Remittance     string
	Refs           EntryRefs
}

// IsCredit reports whether the entry brings funds in.
func (e Entry) IsCredit() bool {
	return e.Direction == Credit
}

// HasForeignAmounts reports whether any foreign currency field is set.
func (e Entry) HasForeignAmounts() bool {
	return e.Instructed != nil || e.CounterValue != nil || e.ExchangeRate != nil
}

// OwnerSide returns the participant that is the account owner and the
// counterparty on the other side.
func (e Entry) OwnerSide() (owner, counterparty Participant) {
	if e.IsCredit() {
		return e.Creditor, e.Debtor
	}
	return e.Debtor, e.Creditor
}
