package query

import "github.com/shopspring/decimal"

// Group is one partition produced by GroupBy: the rows of T sharing key Key.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// First returns the group's representative row, the zero value when empty.
func (g Group[K, T]) First() T {
	if len(g.Rows) == 0 {
		var zero T
		return zero
	}
	return g.Rows[0]
}

// Any reports whether at least one row satisfies pred.
func (g Group[K, T]) Any(pred func(T) bool) bool {
	for _, row := range g.Rows {
		if pred(row) {
			return true
		}
	}
	return false
}

// All reports whether every row satisfies pred. An empty group satisfies All.
func (g Group[K, T]) All(pred func(T) bool) bool {
	for _, row := range g.Rows {
		if !pred(row) {
			return false
		}
	}
	return true
}

// Number constrains the numeric element types Sum can total.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Sum totals f over the group's rows.
func Sum[K comparable, T any, N Number](g Group[K, T], f func(T) N) N {
	var total N
	for _, row := range g.Rows {
		total += f(row)
	}
	return total
}

// SumDecimal totals f over the group's rows with exact decimal arithmetic,
// for money and discount aggregation where float error would move a value
// across a band boundary.
func SumDecimal[K comparable, T any](g Group[K, T], f func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, row := range g.Rows {
		total = total.Add(f(row))
	}
	return total
}
