// Package camt renders statements as ISO 20022 camt.053.001.02 XML.
package camt

import "encoding/xml"

// Schema identifiers written on the document root.
const (
	Namespace      = "urn:iso:std:iso:20022:tech:xsd:camt.053.001.02"
	XSINamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation = Namespace + " camt.053.001.02.xsd"
)

// Document is the camt.053 root element.
type Document struct {
	XMLName        xml.Name      `xml:"Document"`
	Xmlns          string        `xml:"xmlns,attr,omitempty"`
	XSI            string        `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string        `xml:"xsi:schemaLocation,attr,omitempty"`
	BkToCstmrStmt  BkToCstmrStmt `xml:"BkToCstmrStmt"`
}

// BkToCstmrStmt is the bank to customer statement message.
type BkToCstmrStmt struct {
	GrpHdr GrpHdr `xml:"GrpHdr"`
	Stmt   Stmt   `xml:"Stmt"`
}

// GrpHdr is the group header.
type GrpHdr struct {
	MsgID    string   `xml:"MsgId"`
	CreDtTm  string   `xml:"CreDtTm"`
	MsgPgntn MsgPgntn `xml:"MsgPgntn"`
	AddtlInf string   `xml:"AddtlInf,omitempty"`
}

// MsgPgntn is the message pagination.
type MsgPgntn struct {
	PgNb      int  `xml:"PgNb"`
	LastPgInd bool `xml:"LastPgInd"`
}

// Stmt is one account statement.
type Stmt struct {
	ID           string     `xml:"Id"`
	ElctrncSeqNb int        `xml:"ElctrncSeqNb"`
	LglSeqNb     int        `xml:"LglSeqNb"`
	CreDtTm      string     `xml:"CreDtTm"`
	FrToDt       FrToDt     `xml:"FrToDt"`
	Acct         Acct       `xml:"Acct"`
	Bal          []Bal      `xml:"Bal"`
	TxsSummry    *TxsSummry `xml:"TxsSummry,omitempty"`
	Ntry         []Ntry     `xml:"Ntry"`
}

// FrToDt is the statement period.
type FrToDt struct {
	FrDtTm string `xml:"FrDtTm"`
	ToDtTm string `xml:"ToDtTm"`
}

// Acct is the statemented account.
type Acct struct {
	ID   AcctID   `xml:"Id"`
	Tp   *AcctTp  `xml:"Tp,omitempty"`
	Ccy  string   `xml:"Ccy"`
	Nm   string   `xml:"Nm,omitempty"`
	Ownr *Party   `xml:"Ownr,omitempty"`
	Svcr *FinInst `xml:"Svcr,omitempty"`
}

// AcctID identifies an account by IBAN.
type AcctID struct {
	IBAN string `xml:"IBAN"`
}

// AcctTp is the account type.
type AcctTp struct {
	Cd string `xml:"Cd"`
}

// Party is a debtor, creditor or account owner.
type Party struct {
	Nm      string   `xml:"Nm,omitempty"`
	PstlAdr *PstlAdr `xml:"PstlAdr,omitempty"`
}

// PstlAdr is a postal address.
type PstlAdr struct {
	Ctry    string   `xml:"Ctry,omitempty"`
	AdrLine []string `xml:"AdrLine,omitempty"`
}

// FinInst wraps a financial institution identification.
type FinInst struct {
	FinInstnID FinInstnID `xml:"FinInstnId"`
}

// FinInstnID identifies a financial institution.
type FinInstnID struct {
	BIC     string   `xml:"BIC,omitempty"`
	Nm      string   `xml:"Nm,omitempty"`
	PstlAdr *PstlAdr `xml:"PstlAdr,omitempty"`
}

// Bal is an opening or closing balance.
type Bal struct {
	Tp        BalTp   `xml:"Tp"`
	Amt       Amt     `xml:"Amt"`
	CdtDbtInd string  `xml:"CdtDbtInd"`
	Dt        DtValue `xml:"Dt"`
}

// BalTp is the balance type.
type BalTp struct {
	CdOrPrtry CdOrPrtry `xml:"CdOrPrtry"`
}

// CdOrPrtry carries a balance type code.
type CdOrPrtry struct {
	Cd string `xml:"Cd"`
}

// Amt is an amount with its currency attribute.
type Amt struct {
	Value string `xml:",chardata"`
	Ccy   string `xml:"Ccy,attr"`
}

// DtValue is a date element.
type DtValue struct {
	Dt string `xml:"Dt"`
}

// TxsSummry summarizes the statement entries.
type TxsSummry struct {
	TtlNtries    TtlNtries    `xml:"TtlNtries"`
	TtlCdtNtries NumberAndSum `xml:"TtlCdtNtries"`
	TtlDbtNtries NumberAndSum `xml:"TtlDbtNtries"`
}

// TtlNtries is the total over all entries.
type TtlNtries struct {
	NbOfNtries    int    `xml:"NbOfNtries"`
	Sum           string `xml:"Sum"`
	TtlNetNtryAmt string `xml:"TtlNetNtryAmt"`
	CdtDbtInd     string `xml:"CdtDbtInd"`
}

// NumberAndSum is a count of entries and their sum.
type NumberAndSum struct {
	NbOfNtries int    `xml:"NbOfNtries"`
	Sum        string `xml:"Sum"`
}

// Ntry is a statement entry.
type Ntry struct {
	NtryRef   string   `xml:"NtryRef"`
	Amt       Amt      `xml:"Amt"`
	CdtDbtInd string   `xml:"CdtDbtInd"`
	RvslInd   bool     `xml:"RvslInd"`
	Sts       string   `xml:"Sts"`
	BookgDt   DtValue  `xml:"BookgDt"`
	ValDt     DtValue  `xml:"ValDt"`
	BkTxCd    BkTxCd   `xml:"BkTxCd"`
	NtryDtls  NtryDtls `xml:"NtryDtls"`
}

// BkTxCd is a bank transaction code.
type BkTxCd struct {
	Prtry Prtry `xml:"Prtry"`
}

// Prtry is a proprietary code and its issuer.
type Prtry struct {
	Cd   string `xml:"Cd"`
	Issr string `xml:"Issr,omitempty"`
}

// NtryDtls holds the transaction details of an entry.
type NtryDtls struct {
	TxDtls []TxDtls `xml:"TxDtls"`
}

// TxDtls describes one transaction.
type TxDtls struct {
	Refs       Refs       `xml:"Refs"`
	AmtDtls    *AmtDtls   `xml:"AmtDtls,omitempty"`
	BkTxCd     BkTxCd     `xml:"BkTxCd"`
	RltdPties  *RltdPties `xml:"RltdPties,omitempty"`
	RltdAgts   *RltdAgts  `xml:"RltdAgts,omitempty"`
	RmtInf     *RmtInf    `xml:"RmtInf,omitempty"`
	AddtlTxInf string     `xml:"AddtlTxInf,omitempty"`
}

// Refs are the transaction references.
type Refs struct {
	AcctSvcrRef string `xml:"AcctSvcrRef,omitempty"`
	TxID        string `xml:"TxId,omitempty"`
}

// AmtDtls carries the foreign currency amounts of a transaction.
type AmtDtls struct {
	InstdAmt   AmtAndCcyXchg `xml:"InstdAmt"`
	CntrValAmt AmtAndCcyXchg `xml:"CntrValAmt"`
}

// AmtAndCcyXchg is an amount with an optional currency exchange.
type AmtAndCcyXchg struct {
	Amt     Amt      `xml:"Amt"`
	CcyXchg *CcyXchg `xml:"CcyXchg,omitempty"`
}

// CcyXchg describes a currency exchange.
type CcyXchg struct {
	SrcCcy   string `xml:"SrcCcy"`
	TrgtCcy  string `xml:"TrgtCcy"`
	XchgRate string `xml:"XchgRate"`
}

// RltdPties are the parties of a transaction.
type RltdPties struct {
	Dbtr     *Party    `xml:"Dbtr,omitempty"`
	DbtrAcct *CashAcct `xml:"DbtrAcct,omitempty"`
	Cdtr     *Party    `xml:"Cdtr,omitempty"`
	CdtrAcct *CashAcct `xml:"CdtrAcct,omitempty"`
}

// CashAcct is a party's account.
type CashAcct struct {
	ID AcctID `xml:"Id"`
	Nm string `xml:"Nm,omitempty"`
}

// RltdAgts are the agents of a transaction.
type RltdAgts struct {
	DbtrAgt *FinInst `xml:"DbtrAgt,omitempty"`
	CdtrAgt *FinInst `xml:"CdtrAgt,omitempty"`
}

// RmtInf is the remittance information.
type RmtInf struct {
	Ustrd []string `xml:"Ustrd"`
}
