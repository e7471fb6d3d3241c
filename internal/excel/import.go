package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tally-dev/tally/internal/model"
)

// ImportSummary reconstructs transactions from the Expenses, Income and
// Payments sheets of a previously exported workbook. Expense amounts come
// back negative, the other buckets positive. Rows that fail to parse are
// skipped with a warning; a missing sheet is skipped silently.
func ImportSummary(path string, log zerolog.Logger) ([]model.Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var txns []model.Transaction
	for _, sheet := range []string{SheetExpenses, SheetIncome, SheetPayments} {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		if len(rows) <= 1 {
			continue
		}

		for i, row := range rows[1:] {
			txn, err := parseSummaryRow(row, sheet)
			if err != nil {
				log.Warn().Str("sheet", sheet).Int("row", i+2).Err(err).Msg("could not parse summary row")
				continue
			}
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func parseSummaryRow(row []string, sheet string) (model.Transaction, error) {
	if len(row) < 4 || strings.TrimSpace(row[0]) == "" {
		return model.Transaction{}, fmt.Errorf("expected at least 4 populated fields, got %d", len(row))
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", row[0], err)
	}

	amountStr := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(row[2]))
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", row[2], err)
	}
	if sheet == SheetExpenses {
		amount = amount.Abs().Neg()
	} else {
		amount = amount.Abs()
	}

	source := "Unknown"
	if len(row) > 4 && row[4] != "" {
		source = row[4]
	}

	return model.Transaction{
		Date:        date,
		Description: row[1],
		Amount:      amount,
		Category:    row[3],
		Source:      source,
	}, nil
}
