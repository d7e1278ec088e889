package camt

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/revolut2camt/internal/model"
	"github.com/cleared-dev/revolut2camt/internal/money"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05.0+00:00"

	// maxUstrd is the schema limit for one unstructured remittance line.
	maxUstrd = 140
)

// Encode writes s as an indented camt.053 document with an XML declaration.
func Encode(w io.Writer, s *model.Statement) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(FromStatement(s)); err != nil {
		return fmt.Errorf("encoding statement %s: %w", s.ID, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding statement %s: %w", s.ID, err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// FromStatement maps a statement onto the camt.053 element tree.
func FromStatement(s *model.Statement) *Document {
	stmt := Stmt{
		ID:           s.ID,
		ElctrncSeqNb: s.ElectronicSeq,
		LglSeqNb:     s.LegalSeq,
		CreDtTm:      s.CreatedAt.UTC().Format(dateTimeLayout),
		FrToDt: FrToDt{
			FrDtTm: s.From.Format(dateLayout) + "T00:00:00.0+00:00",
			ToDtTm: s.To.Format(dateLayout) + "T23:59:59.9+00:00",
		},
		Acct: Acct{
			ID:   AcctID{IBAN: s.Account.IBAN},
			Tp:   &AcctTp{Cd: s.Account.Type},
			Ccy:  s.Account.Currency,
			Nm:   s.Account.Name,
			Ownr: party(s.Account.Owner),
			Svcr: &FinInst{FinInstnID: FinInstnID{
				BIC:     s.Account.Servicer.BIC,
				Nm:      s.Account.Servicer.Name,
				PstlAdr: country(s.Account.Servicer.Country),
			}},
		},
		Bal:       []Bal{balance(s.Opening), balance(s.Closing)},
		TxsSummry: summary(s.Summary),
	}
	for _, e := range s.Entries {
		stmt.Ntry = append(stmt.Ntry, entry(e))
	}

	return &Document{
		Xmlns:          Namespace,
		XSI:            XSINamespace,
		SchemaLocation: SchemaLocation,
		BkToCstmrStmt: BkToCstmrStmt{
			GrpHdr: GrpHdr{
				MsgID:    s.Header.MessageID,
				CreDtTm:  s.Header.CreatedAt.UTC().Format(dateTimeLayout),
				MsgPgntn: MsgPgntn{PgNb: s.Header.PageNumber, LastPgInd: s.Header.LastPage},
				AddtlInf: s.Header.AdditionalInfo,
			},
			Stmt: stmt,
		},
	}
}

func balance(b model.Balance) Bal {
	return Bal{
		Tp:        BalTp{CdOrPrtry: CdOrPrtry{Cd: b.Code}},
		Amt:       amt(b.Amount, b.Currency),
		CdtDbtInd: string(money.DirectionOf(b.Amount)),
		Dt:        date(b.Date),
	}
}

func summary(s model.Summary) *TxsSummry {
	return &TxsSummry{
		TtlNtries: TtlNtries{
			NbOfNtries:    s.Count(),
			Sum:           money.Format(s.Sum()),
			TtlNetNtryAmt: money.Format(s.Net()),
			CdtDbtInd:     string(s.NetDirection()),
		},
		TtlCdtNtries: NumberAndSum{NbOfNtries: s.Credit.Count, Sum: money.Format(s.Credit.Sum)},
		TtlDbtNtries: NumberAndSum{NbOfNtries: s.Debit.Count, Sum: money.Format(s.Debit.Sum)},
	}
}

func entry(e model.Entry) Ntry {
	code := BkTxCd{Prtry: Prtry{Cd: e.Code.Proprietary, Issr: e.Code.Issuer}}
	tx := TxDtls{
		Refs:       Refs{AcctSvcrRef: e.Refs.AccountServicer, TxID: e.Refs.TransactionID},
		AmtDtls:    amountDetails(e),
		BkTxCd:     code,
		RltdPties:  relatedParties(e),
		RltdAgts:   relatedAgents(e),
		AddtlTxInf: e.AdditionalInfo,
	}
	if e.Remittance != "" {
		tx.RmtInf = &RmtInf{Ustrd: split(e.Remittance, maxUstrd)}
	}

	return Ntry{
		NtryRef:   strconv.Itoa(e.Seq),
		Amt:       amt(e.Amount, e.Currency),
		CdtDbtInd: string(e.Direction),
		RvslInd:   e.Reversal,
		Sts:       e.Status,
		BookgDt:   date(e.BookingDate),
		ValDt:     date(e.ValueDate),
		BkTxCd:    code,
		NtryDtls:  NtryDtls{TxDtls: []TxDtls{tx}},
	}
}

// amountDetails is only present on foreign currency entries.
func amountDetails(e model.Entry) *AmtDtls {
	if e.Instructed == nil || e.CounterValue == nil || e.ExchangeRate == nil {
		return nil
	}
	return &AmtDtls{
		InstdAmt: AmtAndCcyXchg{Amt: amt(e.Instructed.Amount, e.Instructed.Currency)},
		CntrValAmt: AmtAndCcyXchg{
			Amt: amt(e.CounterValue.Amount, e.CounterValue.Currency),
			CcyXchg: &CcyXchg{
				SrcCcy:   e.ExchangeRate.Source,
				TrgtCcy:  e.ExchangeRate.Target,
				XchgRate: money.FormatRate(e.ExchangeRate.Rate),
			},
		},
	}
}

func relatedParties(e model.Entry) *RltdPties {
	rp := &RltdPties{
		Dbtr:     party(e.Debtor.Party),
		DbtrAcct: cashAccount(e.Debtor),
		Cdtr:     party(e.Creditor.Party),
		CdtrAcct: cashAccount(e.Creditor),
	}
	if rp.Dbtr == nil && rp.DbtrAcct == nil && rp.Cdtr == nil && rp.CdtrAcct == nil {
		return nil
	}
	return rp
}

func relatedAgents(e model.Entry) *RltdAgts {
	ra := &RltdAgts{
		DbtrAgt: agent(e.Debtor.Agent),
		CdtrAgt: agent(e.Creditor.Agent),
	}
	if ra.DbtrAgt == nil && ra.CdtrAgt == nil {
		return nil
	}
	return ra
}

func party(p model.Party) *Party {
	var lines []string
	for _, l := range p.Address {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if p.Name == "" && len(lines) == 0 {
		return nil
	}
	out := &Party{Nm: p.Name}
	if len(lines) > 0 {
		out.PstlAdr = &PstlAdr{AdrLine: lines}
	}
	return out
}

func cashAccount(p model.Participant) *CashAcct {
	if p.IBAN == "" {
		return nil
	}
	return &CashAcct{ID: AcctID{IBAN: p.IBAN}, Nm: p.Party.Name}
}

func agent(a *model.Agent) *FinInst {
	if a == nil || (a.BIC == "" && a.Name == "") {
		return nil
	}
	return &FinInst{FinInstnID: FinInstnID{BIC: a.BIC, Nm: a.Name}}
}

func country(c string) *PstlAdr {
	if c == "" {
		return nil
	}
	return &PstlAdr{Ctry: c}
}

// amt renders an unsigned amount; the sign travels in CdtDbtInd.
func amt(d decimal.Decimal, ccy string) Amt {
	return Amt{Value: money.Format(d), Ccy: ccy}
}

func date(t time.Time) DtValue {
	return DtValue{Dt: t.Format(dateLayout)}
}

// split cuts s into chunks of at most n runes.
func split(s string, n int) []string {
	r := []rune(s)
	var out []string
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	return append(out, string(r))
}
