package statement

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

// ValidationError describes a single document invariant violation.
type ValidationError struct {
	Rule        string
	Entry       int // entry sequence number, 0 for document level rules
	Description string
}

func (e ValidationError) Error() string {
	if e.Entry == 0 {
		return fmt.Sprintf("%s: %s", e.Rule, e.Description)
	}
	return fmt.Sprintf("%s [entry %d]: %s", e.Rule, e.Entry, e.Description)
}

// Validation rules.
const (
	RuleBalance   = "balance"
	RuleOrder     = "order"
	RuleSequence  = "sequence"
	RuleDirection = "direction"
	RuleOwner     = "owner"
	RuleCurrency  = "currency"
	RuleSummary   = "summary"
)

// Validate checks the statement invariants and reports every violation
// together. It returns nil or a *multierror.Error of ValidationErrors.
func Validate(s *model.Statement) error {
	var result *multierror.Error
	add := func(rule string, entry int, format string, args ...any) {
		result = multierror.Append(result, ValidationError{
			Rule:        rule,
			Entry:       entry,
			Description: fmt.Sprintf(format, args...),
		})
	}

	sum := decimal.Zero
	var credit, debit model.Totals
	credit.Sum, debit.Sum = decimal.Zero, decimal.Zero

	for i, e := range s.Entries {
		sum = sum.Add(e.Amount)

		if e.Seq != i+1 {
			add(RuleSequence, e.Seq, "expected sequence %d", i+1)
		}
		if i > 0 && e.BookingDate.Before(s.Entries[i-1].BookingDate) {
			add(RuleOrder, e.Seq, "booked %s before previous entry %s",
				e.BookingDate.Format("2006-01-02"), s.Entries[i-1].BookingDate.Format("2006-01-02"))
		}

		switch {
		case e.Direction == model.Credit && e.Amount.IsNegative():
			add(RuleDirection, e.Seq, "credit with negative amount %s", e.Amount)
		case e.Direction == model.Debit && e.Amount.IsPositive():
			add(RuleDirection, e.Seq, "debit with positive amount %s", e.Amount)
		case e.Direction != model.Credit && e.Direction != model.Debit:
			add(RuleDirection, e.Seq, "unknown direction %q", e.Direction)
		}
		if e.IsCredit() {
			credit.Count++
			credit.Sum = credit.Sum.Add(e.Amount.Abs())
		} else {
			debit.Count++
			debit.Sum = debit.Sum.Add(e.Amount.Abs())
		}

		if e.Debtor.Owner == e.Creditor.Owner {
			add(RuleOwner, e.Seq, "exactly one of debtor and creditor must be the account owner")
		} else if owner, _ := e.OwnerSide(); !owner.Owner {
			add(RuleOwner, e.Seq, "account owner is on the wrong side of a %s entry", e.Direction)
		}

		validateCurrency(s.Account.Currency, e, add)
	}

	if computed := s.Opening.Amount.Add(sum); !computed.Equal(s.Closing.Amount) {
		add(RuleBalance, 0, "opening %s plus entries %s does not equal closing %s",
			s.Opening.Amount.StringFixed(2), sum.StringFixed(2), s.Closing.Amount.StringFixed(2))
	}

	if credit.Count != s.Summary.Credit.Count || !credit.Sum.Equal(s.Summary.Credit.Sum) ||
		debit.Count != s.Summary.Debit.Count || !debit.Sum.Equal(s.Summary.Debit.Sum) {
		add(RuleSummary, 0, "summary does not match entries")
	}

	return result.ErrorOrNil()
}

func validateCurrency(account string, e model.Entry, add func(string, int, string, ...any)) {
	if e.Currency != account {
		add(RuleCurrency, e.Seq, "entry currency %s differs from account currency %s", e.Currency, account)
	}
	if !e.HasForeignAmounts() {
		return
	}
	if e.Instructed == nil || e.CounterValue == nil || e.ExchangeRate == nil {
		add(RuleCurrency, e.Seq, "incomplete foreign currency details")
		return
	}
	if e.Instructed.Currency == e.CounterValue.Currency {
		add(RuleCurrency, e.Seq, "foreign currency details on a same currency entry")
	}
	if e.CounterValue.Currency != e.Currency {
		add(RuleCurrency, e.Seq, "counter value in %s, entry in %s", e.CounterValue.Currency, e.Currency)
	}
}
