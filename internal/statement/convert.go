package statement

import (
	"time"

	"github.com/cleared-dev/revolut2camt/internal/importer"
	"github.com/cleared-dev/revolut2camt/internal/model"
	"github.com/cleared-dev/revolut2camt/internal/money"
)

// Options tune a conversion.
type Options struct {
	Now     time.Time // creation timestamp, time.Now when zero
	Workers int       // concurrent entry builders, 1 when below 1
}

// Convert turns ledger records into a finished statement. Records may come
// in any order. Either a complete statement or an error is returned, never
// a partial statement.
func Convert(records []model.SourceRecord, cfg model.AccountConfig, opts Options) (*model.Statement, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	ordered := importer.Chronological(records)
	opening := money.OpeningBalance(ordered[0])

	entries, err := NewBuilder(cfg).BuildAll(ordered, opts.Workers)
	if err != nil {
		return nil, err
	}

	asm := NewAssembler(cfg, opening)
	for _, e := range entries {
		if err := asm.Add(e); err != nil {
			return nil, err
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return asm.Finalize(ordered[len(ordered)-1].Balance, now)
}
