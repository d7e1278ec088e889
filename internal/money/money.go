// Package money computes every amount-bearing statement field with exact
// decimal arithmetic.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

// ratePlaces is the scale of a derived exchange rate.
const ratePlaces = 8

// CurrencyInconsistencyError reports foreign-currency fields that do not
// agree with the record's currencies.
type CurrencyInconsistencyError struct {
	Record string
	Reason string
}

func (e *CurrencyInconsistencyError) Error() string {
	return fmt.Sprintf("currency inconsistency in %s: %s", e.Record, e.Reason)
}

// FX holds the foreign-currency fields of an entry.
type FX struct {
	Instructed   model.Money
	CounterValue model.Money
	Rate         model.Exchange
}

// DirectionOf returns CRDT for a non-negative total and DBIT otherwise.
func DirectionOf(total decimal.Decimal) model.Direction {
	if total.IsNegative() {
		return model.Debit
	}
	return model.Credit
}

// Signed returns the record's total with the sign of its direction.
func Signed(rec model.SourceRecord) decimal.Decimal {
	abs := rec.Total.Abs()
	if DirectionOf(rec.Total) == model.Debit {
		return abs.Neg()
	}
	return abs
}

// IsForeign reports whether the record was made in a currency other than
// the payment currency.
func IsForeign(rec model.SourceRecord) bool {
	return rec.OrigCurrency != "" && rec.OrigCurrency != rec.PaymentCurrency
}

// Exchange returns the foreign-currency fields for rec, or nil when the
// original and payment currencies match. The payment currency must be the
// account currency.
func Exchange(rec model.SourceRecord, accountCurrency string) (*FX, error) {
	if rec.PaymentCurrency != accountCurrency {
		return nil, &CurrencyInconsistencyError{
			Record: rec.Ref(),
			Reason: fmt.Sprintf("payment currency %q differs from account currency %q", rec.PaymentCurrency, accountCurrency),
		}
	}
	if !IsForeign(rec) {
		return nil, nil
	}
	if rec.OrigAmount.IsZero() || rec.Amount.IsZero() {
		return nil, &CurrencyInconsistencyError{
			Record: rec.Ref(),
			Reason: fmt.Sprintf("%s to %s conversion without both amounts", rec.OrigCurrency, rec.PaymentCurrency),
		}
	}

	rate := rec.ExchangeRate
	if !rec.HasExchangeRate() {
		rate = rec.OrigAmount.Abs().DivRound(rec.Amount.Abs(), ratePlaces)
	}

	return &FX{
		Instructed:   model.Money{Amount: rec.OrigAmount.Abs(), Currency: rec.OrigCurrency},
		CounterValue: model.Money{Amount: rec.Amount.Abs(), Currency: rec.PaymentCurrency},
		Rate: model.Exchange{
			Source: rec.OrigCurrency,
			Target: rec.PaymentCurrency,
			Rate:   rate,
		},
	}, nil
}

// OpeningBalance derives the balance before the first chronological record.
func OpeningBalance(first model.SourceRecord) decimal.Decimal {
	return first.Balance.Sub(first.Total)
}

// CheckConsistency verifies that the entry built from rec carries all
// foreign-currency fields when the currencies differ and none otherwise.
func CheckConsistency(rec model.SourceRecord, e model.Entry) error {
	all := e.Instructed != nil && e.CounterValue != nil && e.ExchangeRate != nil
	if IsForeign(rec) {
		if !all {
			return &CurrencyInconsistencyError{Record: rec.Ref(), Reason: "foreign currency entry is missing instructed or counter-value amounts"}
		}
		if e.Instructed.Currency == e.CounterValue.Currency {
			return &CurrencyInconsistencyError{Record: rec.Ref(), Reason: "instructed and counter-value amounts share a currency"}
		}
		return nil
	}
	if e.HasForeignAmounts() {
		return &CurrencyInconsistencyError{Record: rec.Ref(), Reason: "same currency entry carries instructed or counter-value amounts"}
	}
	return nil
}

// Format renders the absolute amount with two decimal places.
func Format(d decimal.Decimal) string {
	return d.Abs().StringFixed(2)
}

// FormatRate renders a rate at the scale it was given with.
func FormatRate(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
