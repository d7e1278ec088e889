package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the ledger transaction type (the "Type" column).
type Category string

const (
	CategoryCardPayment Category = "CARD_PAYMENT"
	CategoryTopup       Category = "TOPUP"
	CategoryFee         Category = "FEE"
	CategoryTransfer    Category = "TRANSFER"
)

// Card holds card metadata carried by card rows. The converter ignores it.
type Card struct {
	Number string
	Label  string
	State  string
}

// SourceRecord represents a parsed ledger CSV row.
type SourceRecord struct {
	Line            int    // physical CSV line, header is line 1
	ID              string // empty when the export has no ID column
	Started         time.Time
	Completed       time.Time // booking timestamp
	Category        Category
	State           string
	Description     string
	Reference       string
	Counterparty    string
	Card            Card
	OrigCurrency    string
	OrigAmount      decimal.Decimal
	PaymentCurrency string
	Amount          decimal.Decimal // before fees
	Fee             decimal.Decimal
	Total           decimal.Decimal // Amount - Fee
	Balance         decimal.Decimal // balance after this row
	ExchangeRate    decimal.Decimal // zero when the export carries no rate
	BeneficiaryIBAN string
	BeneficiaryBIC  string
	MCC             string
}

// Ref identifies the record in error messages.
func (r SourceRecord) Ref() string {
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("line %d", r.Line)
}

// HasExchangeRate reports whether the export supplied a rate for this row.
func (r SourceRecord) HasExchangeRate() bool {
	return !r.ExchangeRate.IsZero()
}
