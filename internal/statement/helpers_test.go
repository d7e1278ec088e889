package statement

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/revolut2camt/internal/importer"
	"github.com/cleared-dev/revolut2camt/internal/model"
)

var testNow = time.Date(2026, 2, 1, 9, 30, 15, 0, time.UTC)

func testConfig() model.AccountConfig {
	return model.AccountConfig{
		IBAN:           "LT353250012345678901",
		Currency:       "EUR",
		OwnerName:      "Nethemba s.r.o.",
		OwnerAddress:   [2]string{"Grosslingova 2503/62", "Bratislava - St. Mesto 81109 SK"},
		Servicer:       model.Agent{BIC: "REVOLT21", Name: "Revolut Bank UAB", Country: "LT"},
		CodeIssuer:     "SBA",
		AdditionalInfo: "mesacny",
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func loadFixture(t *testing.T) []model.SourceRecord {
	t.Helper()
	f, err := os.Open("../../testdata/revolut_business.csv")
	require.NoError(t, err)
	defer f.Close()

	recs, err := (&importer.RevolutParser{}).Parse(f)
	require.NoError(t, err)
	return recs
}

// feeRecord is a fee of 2.50 leaving 97.50 on the account.
func feeRecord() model.SourceRecord {
	return model.SourceRecord{
		Line:            2,
		ID:              "fee-1",
		Started:         day("2026-01-31"),
		Completed:       day("2026-01-31"),
		Category:        model.CategoryFee,
		State:           "COMPLETED",
		Description:     "Grow plan fee",
		Counterparty:    "Bank Fee",
		OrigCurrency:    "EUR",
		OrigAmount:      dec("-2.50"),
		PaymentCurrency: "EUR",
		Amount:          dec("-2.50"),
		Fee:             dec("0"),
		Total:           dec("-2.50"),
		Balance:         dec("97.50"),
	}
}

// czkRecord is a card payment of 1000 CZK settled as 40.00 EUR plus a 0.50 fee.
func czkRecord() model.SourceRecord {
	return model.SourceRecord{
		Line:            3,
		ID:              "card-1",
		Started:         day("2026-01-11"),
		Completed:       day("2026-01-12"),
		Category:        model.CategoryCardPayment,
		State:           "COMPLETED",
		Description:     "Alza.cz",
		Counterparty:    "Alza.cz a.s.",
		OrigCurrency:    "CZK",
		OrigAmount:      dec("-1000.00"),
		PaymentCurrency: "EUR",
		Amount:          dec("-40.00"),
		Fee:             dec("0.50"),
		Total:           dec("-40.50"),
		Balance:         dec("519.50"),
		ExchangeRate:    dec("25.00"),
	}
}
