package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

// RevolutParser parses Revolut Business transaction statement CSV exports.
// Columns are located by header name, so column order does not matter.
type RevolutParser struct{}

const (
	colDateStarted     = "date started"
	colDateCompleted   = "date completed"
	colID              = "id"
	colType            = "type"
	colState           = "state"
	colDescription     = "description"
	colReference       = "reference"
	colCounterparty    = "payer"
	colCardNumber      = "card number"
	colCardLabel       = "card label"
	colCardState       = "card state"
	colOrigCurrency    = "orig currency"
	colOrigAmount      = "orig amount"
	colPaymentCurrency = "payment currency"
	colAmount          = "amount"
	colTotal           = "total amount"
	colExchangeRate    = "exchange rate"
	colFee             = "fee"
	colBalance         = "balance"
	colBeneficiaryIBAN = "beneficiary iban"
	colBeneficiaryBIC  = "beneficiary bic"
	colMCC             = "mcc"
)

var requiredColumns = []string{
	colDateStarted,
	colDateCompleted,
	colType,
	colState,
	colDescription,
	colCounterparty,
	colOrigCurrency,
	colOrigAmount,
	colPaymentCurrency,
	colAmount,
	colFee,
	colTotal,
	colBalance,
	colMCC,
}

// columnAliases maps alternative header spellings to canonical names.
var columnAliases = map[string]string{
	"counterparty":      colCounterparty,
	"counterparty name": colCounterparty,
	"started date":      colDateStarted,
	"completed date":    colDateCompleted,
}

var revolutDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// Format returns the parser name.
func (p *RevolutParser) Format() string { return "revolut" }

// Parse reads a Revolut CSV and returns SourceRecords in file order.
func (p *RevolutParser) Parse(r io.Reader) ([]model.SourceRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MalformedInputError{Line: 1, Err: ErrMissingHeader}
	}
	if err != nil {
		return nil, csvError(err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var recs []model.SourceRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)
		src, err := parseRevolutRow(cols, rec, line)
		if err != nil {
			return nil, err
		}
		recs = append(recs, src)
	}
	return recs, nil
}

// normalizeHeader folds a header cell to its canonical column name.
// "Date completed (UTC)" -> "date completed".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	h = strings.TrimSpace(strings.TrimSuffix(h, "(utc)"))
	if canonical, ok := columnAliases[h]; ok {
		return canonical
	}
	return h
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &MalformedInputError{Line: 1, Column: name, Err: ErrMissingColumn}
		}
	}
	return cols, nil
}

// row gives typed access to one CSV record by column name.
type row struct {
	cols map[string]int
	rec  []string
	line int
}

func (r row) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) date(col string) (time.Time, error) {
	v := r.get(col)
	if v == "" {
		return time.Time{}, &MalformedInputError{Line: r.line, Column: col, Err: ErrEmptyValue}
	}
	var lastErr error
	for _, layout := range revolutDateFormats {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &MalformedInputError{Line: r.line, Column: col, Value: v, Err: fmt.Errorf("parsing date: %w", lastErr)}
}

// decimal parses a required amount column.
func (r row) decimal(col string) (decimal.Decimal, error) {
	v := r.get(col)
	if v == "" {
		return decimal.Zero, &MalformedInputError{Line: r.line, Column: col, Err: ErrEmptyValue}
	}
	return r.parseDecimal(col, v)
}

// optionalDecimal parses an amount column where empty means zero.
func (r row) optionalDecimal(col string) (decimal.Decimal, error) {
	v := r.get(col)
	if v == "" {
		return decimal.Zero, nil
	}
	return r.parseDecimal(col, v)
}

func (r row) parseDecimal(col, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, &MalformedInputError{Line: r.line, Column: col, Value: v, Err: fmt.Errorf("parsing amount: %w", err)}
	}
	return d, nil
}

func parseRevolutRow(cols map[string]int, rec []string, line int) (model.SourceRecord, error) {
	r := row{cols: cols, rec: rec, line: line}

	started, err := r.date(colDateStarted)
	if err != nil {
		return model.SourceRecord{}, err
	}
	completed, err := r.date(colDateCompleted)
	if err != nil {
		return model.SourceRecord{}, err
	}

	category := r.get(colType)
	if category == "" {
		return model.SourceRecord{}, &MalformedInputError{Line: line, Column: colType, Err: ErrEmptyValue}
	}

	origAmount, err := r.optionalDecimal(colOrigAmount)
	if err != nil {
		return model.SourceRecord{}, err
	}
	amount, err := r.decimal(colAmount)
	if err != nil {
		return model.SourceRecord{}, err
	}
	fee, err := r.optionalDecimal(colFee)
	if err != nil {
		return model.SourceRecord{}, err
	}
	total, err := r.decimal(colTotal)
	if err != nil {
		return model.SourceRecord{}, err
	}
	balance, err := r.decimal(colBalance)
	if err != nil {
		return model.SourceRecord{}, err
	}
	rate, err := r.optionalDecimal(colExchangeRate)
	if err != nil {
		return model.SourceRecord{}, err
	}

	if !amount.Sub(fee).Equal(total) {
		return model.SourceRecord{}, &MalformedInputError{
			Line:   line,
			Column: colTotal,
			Value:  r.get(colTotal),
			Err:    fmt.Errorf("%w (amount %s, fee %s)", ErrTotalMismatch, amount, fee),
		}
	}

	return model.SourceRecord{
		Line:         line,
		ID:           r.get(colID),
		Started:      started,
		Completed:    completed,
		Category:     model.Category(category),
		State:        r.get(colState),
		Description:  r.get(colDescription),
		Reference:    r.get(colReference),
		Counterparty: r.get(colCounterparty),
		Card: model.Card{
			Number: r.get(colCardNumber),
			Label:  r.get(colCardLabel),
			State:  r.get(colCardState),
		},
		OrigCurrency:    r.get(colOrigCurrency),
		OrigAmount:      origAmount,
		PaymentCurrency: r.get(colPaymentCurrency),
		Amount:          amount,
		Fee:             fee,
		Total:           total,
		Balance:         balance,
		ExchangeRate:    rate,
		BeneficiaryIBAN: r.get(colBeneficiaryIBAN),
		BeneficiaryBIC:  r.get(colBeneficiaryBIC),
		MCC:             r.get(colMCC),
	}, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedInputError{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("reading revolut CSV: %w", err)
}
