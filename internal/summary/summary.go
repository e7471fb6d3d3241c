// Package summary partitions a transaction set into expense, income and
// payment buckets and computes per-month totals.
package summary

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/category"
	"github.com/tally-dev/tally/internal/model"
)

// MonthTotals holds one month's aggregate income and expenses.
type MonthTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Summary is derived data, recomputed from scratch on every pass. Months
// with no activity simply do not appear as keys; absence means zero.
type Summary struct {
	Expenses []model.Transaction
	Income   []model.Transaction
	Payments []model.Transaction

	// Monthly maps "YYYY-MM" to that month's totals.
	Monthly map[string]MonthTotals
	// Breakdown maps "YYYY-MM" to per-expense-category totals. Only
	// categories in the expense taxonomy accumulate here.
	Breakdown map[string]map[string]decimal.Decimal
}

// Summarize aggregates a transaction set. Transactions categorized as
// Ignore are excluded entirely. Payment-category membership takes
// precedence over the amount sign; everything else buckets by sign.
// Bucket lists come back sorted ascending by date, stable for equal dates.
func Summarize(txns []model.Transaction, store *category.Store) *Summary {
	s := &Summary{
		Monthly:   make(map[string]MonthTotals),
		Breakdown: make(map[string]map[string]decimal.Decimal),
	}

	for _, txn := range txns {
		if txn.Category == model.CategoryIgnore {
			continue
		}

		month := txn.MonthKey()
		switch {
		case store.IsPayment(txn.Category):
			s.Payments = append(s.Payments, txn)
		case txn.Amount.IsNegative():
			s.Expenses = append(s.Expenses, txn)
			amount := txn.Amount.Abs()

			totals := s.Monthly[month]
			totals.Expenses = totals.Expenses.Add(amount)
			s.Monthly[month] = totals

			if store.IsExpense(txn.Category) {
				cells := s.Breakdown[month]
				if cells == nil {
					cells = make(map[string]decimal.Decimal)
					s.Breakdown[month] = cells
				}
				cells[txn.Category] = cells[txn.Category].Add(amount)
			}
		default:
			s.Income = append(s.Income, txn)
			totals := s.Monthly[month]
			totals.Income = totals.Income.Add(txn.Amount)
			s.Monthly[month] = totals
		}
	}

	byDate := func(a, b model.Transaction) int { return a.Date.Compare(b.Date) }
	slices.SortStableFunc(s.Expenses, byDate)
	slices.SortStableFunc(s.Income, byDate)
	slices.SortStableFunc(s.Payments, byDate)

	return s
}

// Months returns the keys of Monthly in ascending order.
func (s *Summary) Months() []string {
	months := make([]string, 0, len(s.Monthly))
	for m := range s.Monthly {
		months = append(months, m)
	}
	slices.Sort(months)
	return months
}

// BreakdownMonths returns the keys of Breakdown in ascending order.
func (s *Summary) BreakdownMonths() []string {
	months := make([]string, 0, len(s.Breakdown))
	for m := range s.Breakdown {
		months = append(months, m)
	}
	slices.Sort(months)
	return months
}
