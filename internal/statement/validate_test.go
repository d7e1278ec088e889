package statement

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

func validStatement(t *testing.T) *model.Statement {
	t.Helper()
	s, err := Convert(loadFixture(t), testConfig(), Options{Now: testNow})
	require.NoError(t, err)
	return s
}

func rules(t *testing.T, err error) []string {
	t.Helper()
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr), "expected *multierror.Error, got %T", err)

	var out []string
	for _, e := range merr.Errors {
		var ve ValidationError
		require.True(t, errors.As(e, &ve))
		out = append(out, ve.Rule)
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validStatement(t)))
}

func TestValidate_Order(t *testing.T) {
	s := validStatement(t)
	s.Entries[0].BookingDate, s.Entries[1].BookingDate = s.Entries[1].BookingDate, s.Entries[0].BookingDate

	assert.Equal(t, []string{RuleOrder}, rules(t, Validate(s)))
}

func TestValidate_TwoOwners(t *testing.T) {
	s := validStatement(t)
	s.Entries[0].Debtor.Owner = true

	assert.Equal(t, []string{RuleOwner}, rules(t, Validate(s)))
}

func TestValidate_OwnerOnWrongSide(t *testing.T) {
	s := validStatement(t)
	e := &s.Entries[0]
	e.Debtor, e.Creditor = e.Creditor, e.Debtor

	assert.Equal(t, []string{RuleOwner}, rules(t, Validate(s)))
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	s := validStatement(t)
	s.Closing.Amount = s.Closing.Amount.Add(dec("0.01"))
	s.Entries[1].Seq = 9
	s.Entries[2].CounterValue = nil

	err := Validate(s)
	assert.ElementsMatch(t, []string{RuleSequence, RuleCurrency, RuleBalance}, rules(t, err))
	assert.Contains(t, err.Error(), "3 errors occurred")
}

func TestValidate_ForeignOnSameCurrency(t *testing.T) {
	s := validStatement(t)
	e := &s.Entries[0]
	e.Instructed = &model.Money{Amount: dec("1"), Currency: "EUR"}
	e.CounterValue = &model.Money{Amount: dec("1"), Currency: "EUR"}
	e.ExchangeRate = &model.Exchange{Source: "EUR", Target: "EUR", Rate: dec("1")}

	assert.Equal(t, []string{RuleCurrency}, rules(t, Validate(s)))
}

func TestValidate_Summary(t *testing.T) {
	s := validStatement(t)
	s.Summary.Credit.Count++

	assert.Equal(t, []string{RuleSummary}, rules(t, Validate(s)))
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "order [entry 2]: booked late", ValidationError{Rule: RuleOrder, Entry: 2, Description: "booked late"}.Error())
	assert.Equal(t, "balance: off", ValidationError{Rule: RuleBalance, Description: "off"}.Error())
}
