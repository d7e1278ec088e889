package config

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var (
	validate  = validator.New()
	ibanShape = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerIBAN()
}

// FieldError is a single invalid config field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("config field %s fails %s=%s", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("config field %s fails %s", e.Field, e.Rule)
}

// Validate checks every field and reports all failures together as
// FieldErrors.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if err := validate.Struct(c); err != nil {
		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			return err
		}
		for _, fe := range valErrs {
			errs = multierror.Append(errs, FieldError{
				Field: strings.TrimPrefix(fe.Namespace(), "Config."),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return errs.ErrorOrNil()
}

func registerIBAN() {
	validate.RegisterValidation("iban", func(fl validator.FieldLevel) bool {
		return ValidIBAN(fl.Field().String())
	})
}

// ValidIBAN checks the IBAN shape and its mod-97 check digits. Spaces are
// ignored.
func ValidIBAN(s string) bool {
	s = normalizeIBAN(s)
	if !ibanShape.MatchString(s) {
		return false
	}
	rearranged := s[4:] + s[:4]
	var digits strings.Builder
	for _, r := range rearranged {
		if r >= 'A' && r <= 'Z' {
			fmt.Fprintf(&digits, "%d", r-'A'+10)
			continue
		}
		digits.WriteRune(r)
	}
	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}
