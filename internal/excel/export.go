// Package excel renders the aggregated summary into a five-sheet workbook
// and reads transaction records back out of an existing one.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tally-dev/tally/internal/category"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/summary"
)

// Sheet names. The import side reconstructs transactions from the three
// bucket sheets alone.
const (
	SheetMonthly   = "Monthly Summary"
	SheetBreakdown = "Monthly Expense Breakdown"
	SheetExpenses  = "Expenses"
	SheetIncome    = "Income"
	SheetPayments  = "Payments"
)

const (
	dateLayout  = "2006-01-02"
	currencyFmt = "$#,##0.00"
)

// Export writes the workbook. The expense breakdown covers the full
// expense taxonomy, zero cells included, with a trailing per-month total.
func Export(path string, s *summary.Summary, store *category.Store) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMonthly); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{SheetBreakdown, SheetExpenses, SheetIncome, SheetPayments} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(currencyFmt)})
	if err != nil {
		return fmt.Errorf("creating currency style: %w", err)
	}

	if err := writeMonthlySheet(f, s, money); err != nil {
		return err
	}
	if err := writeBreakdownSheet(f, s, store, money); err != nil {
		return err
	}
	for name, txns := range map[string][]model.Transaction{
		SheetExpenses: s.Expenses,
		SheetIncome:   s.Income,
		SheetPayments: s.Payments,
	} {
		if err := writeTransactionSheet(f, name, txns, money); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeMonthlySheet(f *excelize.File, s *summary.Summary, money int) error {
	if err := setRow(f, SheetMonthly, 1, "Month", "Total Income", "Total Expenses", "Net Income"); err != nil {
		return err
	}

	for i, month := range s.Months() {
		totals := s.Monthly[month]
		net := totals.Income.Sub(totals.Expenses)
		row := i + 2
		if err := setRow(f, SheetMonthly, row, month,
			totals.Income.InexactFloat64(), totals.Expenses.InexactFloat64(), net.InexactFloat64()); err != nil {
			return err
		}
		if err := styleCells(f, SheetMonthly, row, 2, 4, money); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetMonthly, "A", "D", 15)
}

func writeBreakdownSheet(f *excelize.File, s *summary.Summary, store *category.Store, money int) error {
	header := []any{"Month"}
	for _, cat := range store.Expense {
		header = append(header, cat)
	}
	header = append(header, "Total")
	if err := setRow(f, SheetBreakdown, 1, header...); err != nil {
		return err
	}

	totalCol := len(store.Expense) + 2
	for i, month := range s.BreakdownMonths() {
		row := i + 2
		cells := s.Breakdown[month]

		values := []any{month}
		monthTotal := decimal.Zero
		for _, cat := range store.Expense {
			amount := cells[cat]
			monthTotal = monthTotal.Add(amount)
			values = append(values, amount.InexactFloat64())
		}
		values = append(values, monthTotal.InexactFloat64())

		if err := setRow(f, SheetBreakdown, row, values...); err != nil {
			return err
		}
		if err := styleCells(f, SheetBreakdown, row, 2, totalCol, money); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetBreakdown, "A", "A", 12); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(totalCol)
	if err != nil {
		return fmt.Errorf("resolving column name: %w", err)
	}
	return f.SetColWidth(SheetBreakdown, "B", last, 15)
}

func writeTransactionSheet(f *excelize.File, sheet string, txns []model.Transaction, money int) error {
	if err := setRow(f, sheet, 1, "Date", "Description", "Amount", "Category", "Source"); err != nil {
		return err
	}

	for i, txn := range txns {
		row := i + 2
		if err := setRow(f, sheet, row,
			txn.Date.Format(dateLayout), txn.Description, txn.Amount.Abs().InexactFloat64(),
			txn.Category, txn.Source); err != nil {
			return err
		}
		if err := styleCells(f, sheet, row, 3, 3, money); err != nil {
			return err
		}
	}

	for col, width := range map[string]float64{"A": 12, "B": 40, "C": 12, "D": 18, "E": 20} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleCells(f *excelize.File, sheet string, row, fromCol, toCol, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func ptr[T any](v T) *T { return &v }
