package importer

import (
	"slices"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

// Chronological returns the records oldest first, ordered by booking
// timestamp. Newest-first exports are reversed before sorting so rows
// booked at the same timestamp keep their ledger order. The input slice is
// not modified.
func Chronological(recs []model.SourceRecord) []model.SourceRecord {
	out := slices.Clone(recs)
	if newestFirst(out) {
		slices.Reverse(out)
	}
	slices.SortStableFunc(out, func(a, b model.SourceRecord) int {
		return a.Completed.Compare(b.Completed)
	})
	return out
}

// newestFirst decides the orientation of the export. When the first and
// last booking timestamps tie, the running balance chain decides.
func newestFirst(recs []model.SourceRecord) bool {
	if len(recs) < 2 {
		return false
	}
	first, last := recs[0].Completed, recs[len(recs)-1].Completed
	if !first.Equal(last) {
		return first.After(last)
	}
	return !balanceChains(recs)
}

// balanceChains reports whether every row's balance equals the previous
// row's balance plus its own total.
func balanceChains(recs []model.SourceRecord) bool {
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if !prev.Balance.Add(cur.Total).Equal(cur.Balance) {
			return false
		}
	}
	return true
}
