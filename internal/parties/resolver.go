// Package parties decides which side of an entry the account owner is on
// and describes the counterparty.
package parties

import (
	"regexp"
	"strings"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

var moneyAddedFrom = regexp.MustCompile(`(?i)^money added from\s+(.+)$`)

// Resolver assigns the owner and the counterparty to the debtor and
// creditor roles. It is immutable once built and safe for concurrent use.
type Resolver struct {
	owner   model.Party
	iban    string
	ownBank model.Agent
}

// NewResolver builds a resolver for the configured account.
func NewResolver(cfg model.AccountConfig) *Resolver {
	return &Resolver{
		owner:   cfg.OwnerParty(),
		iban:    cfg.IBAN,
		ownBank: cfg.Servicer,
	}
}

// Owner returns a fresh participant for the account owner.
func (r *Resolver) Owner() model.Participant {
	bank := r.ownBank
	return model.Participant{
		Party: model.Party{
			Name:    r.owner.Name,
			Address: append([]string(nil), r.owner.Address...),
		},
		IBAN:  r.iban,
		Agent: &bank,
		Owner: true,
	}
}

// Resolve returns the debtor and creditor for an entry. The owner is the
// creditor of a credit and the debtor of a debit.
func (r *Resolver) Resolve(dir model.Direction, counterparty model.Participant) (debtor, creditor model.Participant) {
	counterparty.Owner = false
	counterparty.Agent = nil
	if dir == model.Credit {
		return counterparty, r.Owner()
	}
	return r.Owner(), counterparty
}

// Counterparty describes the other side of rec.
func Counterparty(rec model.SourceRecord) model.Participant {
	return model.Participant{
		Party: model.Party{Name: CounterpartyName(rec)},
		IBAN:  strings.ReplaceAll(rec.BeneficiaryIBAN, " ", ""),
	}
}

// CounterpartyName prefers the counterparty column. Top-ups without one
// carry the payer in the description as "Money added from X".
func CounterpartyName(rec model.SourceRecord) string {
	if name := strings.TrimSpace(rec.Counterparty); name != "" {
		return name
	}
	desc := strings.TrimSpace(rec.Description)
	if rec.Category == model.CategoryTopup {
		if m := moneyAddedFrom.FindStringSubmatch(desc); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return desc
}
