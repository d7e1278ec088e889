package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/revolut2camt/internal/id"
	"github.com/cleared-dev/revolut2camt/internal/model"
)

// Assembler collects entries into a statement. It starts accumulating and
// becomes finalized after the first call to Finalize; it is not safe for
// concurrent use.
type Assembler struct {
	cfg       model.AccountConfig
	opening   decimal.Decimal
	running   decimal.Decimal
	entries   []model.Entry
	summary   model.Summary
	from, to  time.Time
	finalized bool
}

// NewAssembler starts a statement for the account at the given opening
// balance.
func NewAssembler(cfg model.AccountConfig, opening decimal.Decimal) *Assembler {
	return &Assembler{
		cfg:     cfg,
		opening: opening,
		running: opening,
		summary: model.Summary{
			Credit: model.Totals{Sum: decimal.Zero},
			Debit:  model.Totals{Sum: decimal.Zero},
		},
	}
}

// Add appends an entry and updates the running totals and period.
func (a *Assembler) Add(e model.Entry) error {
	if a.finalized {
		return ErrFinalized
	}

	a.entries = append(a.entries, e)
	a.running = a.running.Add(e.Amount)

	if e.IsCredit() {
		a.summary.Credit.Count++
		a.summary.Credit.Sum = a.summary.Credit.Sum.Add(e.Amount.Abs())
	} else {
		a.summary.Debit.Count++
		a.summary.Debit.Sum = a.summary.Debit.Sum.Add(e.Amount.Abs())
	}

	if a.from.IsZero() || e.BookingDate.Before(a.from) {
		a.from = e.BookingDate
	}
	if e.BookingDate.After(a.to) {
		a.to = e.BookingDate
	}
	return nil
}

// Len returns the number of entries added so far.
func (a *Assembler) Len() int {
	return len(a.entries)
}

// Finalize closes the statement. The computed closing balance must equal
// recordedClosing exactly and the document must pass Validate. Finalize
// runs once; later calls return ErrFinalized.
func (a *Assembler) Finalize(recordedClosing decimal.Decimal, createdAt time.Time) (*model.Statement, error) {
	if a.finalized {
		return nil, ErrFinalized
	}
	a.finalized = true

	if len(a.entries) == 0 {
		return nil, ErrNoRecords
	}
	if !a.running.Equal(recordedClosing) {
		return nil, &BalanceMismatchError{Computed: a.running, Recorded: recordedClosing}
	}

	created := createdAt.UTC().Truncate(time.Second)
	s := &model.Statement{
		Header: model.Header{
			MessageID:      id.MessageID(a.cfg.Servicer.BIC, a.cfg.IBAN, created),
			CreatedAt:      created,
			PageNumber:     1,
			LastPage:       true,
			AdditionalInfo: a.cfg.AdditionalInfo,
		},
		ID:            id.StatementID(a.cfg.IBAN, a.from, a.to),
		ElectronicSeq: 1,
		LegalSeq:      1,
		CreatedAt:     created,
		From:          a.from,
		To:            a.to,
		Account: model.Account{
			IBAN:     a.cfg.IBAN,
			Type:     model.AccountTypeCurrent,
			Currency: a.cfg.Currency,
			Name:     a.cfg.OwnerName,
			Owner:    a.cfg.OwnerParty(),
			Servicer: a.cfg.Servicer,
		},
		Opening: model.Balance{
			Code:     model.BalanceOpening,
			Amount:   a.opening,
			Currency: a.cfg.Currency,
			Date:     a.from,
		},
		Closing: model.Balance{
			Code:     model.BalanceClosing,
			Amount:   a.running,
			Currency: a.cfg.Currency,
			Date:     a.to,
		},
		Entries: a.entries,
		Summary: a.summary,
	}

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
