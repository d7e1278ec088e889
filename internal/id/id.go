package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// namespace scopes derived transaction ids to this converter.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/cleared-dev/revolut2camt"))

// MessageID returns a group header message id like
// "REVOLT21-8901-260131-142500": servicer BIC, last four IBAN characters,
// creation date and time.
func MessageID(bic, iban string, created time.Time) string {
	created = created.UTC()
	return fmt.Sprintf("%s-%s-%s-%s", bic, IBANSuffix(iban), created.Format("060102"), created.Format("150405"))
}

// StatementID returns a statement id like "LT353250012345678901-260105-260131".
func StatementID(iban string, from, to time.Time) string {
	return fmt.Sprintf("%s-%s-%s", iban, from.Format("060102"), to.Format("060102"))
}

// OutputFileName returns the default output file name for a statement,
// like "LT353250012345678901_20260105_20260131.xml".
func OutputFileName(iban string, from, to time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xml", iban, from.Format("20060102"), to.Format("20060102"))
}

// IBANSuffix returns the last four characters of an IBAN, ignoring spaces.
func IBANSuffix(iban string) string {
	iban = strings.ReplaceAll(iban, " ", "")
	if len(iban) <= 4 {
		return iban
	}
	return iban[len(iban)-4:]
}

// TransactionID derives a stable name-based UUID from the given parts.
// The same parts always produce the same id.
func TransactionID(parts ...string) string {
	return uuid.NewSHA1(namespace, []byte(strings.Join(parts, "\x1f"))).String()
}
