package statement

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/revolut2camt/internal/codes"
	"github.com/cleared-dev/revolut2camt/internal/id"
	"github.com/cleared-dev/revolut2camt/internal/model"
	"github.com/cleared-dev/revolut2camt/internal/money"
	"github.com/cleared-dev/revolut2camt/internal/parties"
)

// Builder turns source records into statement entries. It holds no mutable
// state and is safe for concurrent use.
type Builder struct {
	cfg     model.AccountConfig
	parties *parties.Resolver
}

// NewBuilder returns a builder for the configured account.
func NewBuilder(cfg model.AccountConfig) *Builder {
	return &Builder{cfg: cfg, parties: parties.NewResolver(cfg)}
}

// Build maps one record to the entry with sequence number seq. Errors from
// the resolvers are returned unchanged.
func (b *Builder) Build(seq int, rec model.SourceRecord) (model.Entry, error) {
	code, err := b.code(rec.Category)
	if err != nil {
		return model.Entry{}, err
	}

	fx, err := money.Exchange(rec, b.cfg.Currency)
	if err != nil {
		return model.Entry{}, err
	}

	dir := money.DirectionOf(rec.Total)
	debtor, creditor := b.parties.Resolve(dir, parties.Counterparty(rec))
	booked := dateOf(rec.Completed)

	e := model.Entry{
		Seq:            seq,
		BookingDate:    booked,
		ValueDate:      booked,
		Amount:         money.Signed(rec),
		Currency:       rec.PaymentCurrency,
		Direction:      dir,
		Status:         model.EntryStatusBooked,
		Code:           model.BankCode{Proprietary: code.Proprietary, Issuer: b.cfg.CodeIssuer},
		AdditionalInfo: code.Description,
		Debtor:         debtor,
		Creditor:       creditor,
		Remittance:     remittance(rec),
		Refs: model.EntryRefs{
			AccountServicer: strconv.Itoa(seq),
			TransactionID:   transactionID(rec),
		},
	}
	if fx != nil {
		e.Instructed = &fx.Instructed
		e.CounterValue = &fx.CounterValue
		e.ExchangeRate = &fx.Rate
	}

	if err := money.CheckConsistency(rec, e); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// BuildAll builds entries for records in order, numbering them from 1.
// Up to workers records are built concurrently; results keep the input
// order. The first failure stops the remaining work and is returned as a
// *RecordError.
func (b *Builder) BuildAll(records []model.SourceRecord, workers int) ([]model.Entry, error) {
	if workers < 1 {
		workers = 1
	}

	entries := make([]model.Entry, len(records))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			e, err := b.Build(i+1, rec)
			if err != nil {
				return &RecordError{Record: rec.Ref(), Err: err}
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *Builder) code(c model.Category) (codes.Code, error) {
	code, err := codes.Resolve(c)
	if err != nil && b.cfg.AllowUnknownCategories {
		return codes.Fallback(c), nil
	}
	return code, err
}

// remittance joins description and reference, falling back to the category.
func remittance(rec model.SourceRecord) string {
	var parts []string
	if d := strings.TrimSpace(rec.Description); d != "" {
		parts = append(parts, d)
	}
	if r := strings.TrimSpace(rec.Reference); r != "" {
		parts = append(parts, r)
	}
	if len(parts) == 0 {
		return string(rec.Category)
	}
	return strings.Join(parts, "; ")
}

func transactionID(rec model.SourceRecord) string {
	if rec.ID != "" {
		return rec.ID
	}
	return id.TransactionID(
		rec.Completed.Format(time.RFC3339),
		string(rec.Category),
		rec.Description,
		rec.Reference,
		rec.Total.String(),
		rec.Balance.String(),
	)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
