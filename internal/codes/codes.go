// Package codes maps ledger transaction categories to the proprietary bank
// transaction codes and descriptions expected by the receiving bank.
package codes

import (
	"fmt"
	"sort"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

// Code is a proprietary bank transaction code with its localized description.
type Code struct {
	Proprietary string
	Description string
}

// FallbackCode is used for categories without a table entry when the caller
// explicitly allows unknown categories.
const FallbackCode = "99999999999"

// table is built once and never modified.
var table = map[model.Category]Code{
	model.CategoryCardPayment: {Proprietary: "30000301000", Description: "Kartova transakcia"},
	model.CategoryTopup:       {Proprietary: "10000405000", Description: "Prijata platba"},
	model.CategoryFee:         {Proprietary: "40000605000", Description: "Poplatok"},
	model.CategoryTransfer:    {Proprietary: "20000405000", Description: "Odchadzajuca platba"},
}

// UnknownCategoryError reports a category missing from the code table.
type UnknownCategoryError struct {
	Category model.Category
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown transaction category %q", string(e.Category))
}

// Resolve returns the code for a category.
func Resolve(c model.Category) (Code, error) {
	code, ok := table[c]
	if !ok {
		return Code{}, &UnknownCategoryError{Category: c}
	}
	return code, nil
}

// Fallback returns the generic code for a category, carrying the category
// name as description.
func Fallback(c model.Category) Code {
	return Code{Proprietary: FallbackCode, Description: string(c)}
}

// Categories returns all mapped categories, sorted.
func Categories() []model.Category {
	out := make([]model.Category, 0, len(table))
	for c := range table {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
