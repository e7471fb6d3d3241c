// Package importer normalizes bank and credit card CSV exports into
// canonical transactions, driven by a bank format configuration.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/bankformat"
	"github.com/tally-dev/tally/internal/model"
)

// Reconciler binds an Amazon-looking transaction to a historical order.
// A false return means no order matched, which is a normal outcome.
type Reconciler interface {
	Reconcile(txn *model.Transaction) bool
}

// Skip records one row that produced no transaction.
type Skip struct {
	Line   int // 1-based line number in the file
	Reason string
}

// Report is the outcome of parsing one CSV file. A file always completes
// with whatever rows succeeded; per-row failures land in Skips.
type Report struct {
	Transactions []model.Transaction
	Skips        []Skip
	Matched      int // transactions bound to an Amazon order
}

// Parser converts one bank CSV file into transactions.
type Parser struct {
	Format     bankformat.Format
	Source     string
	Reconciler Reconciler     // optional
	Log        zerolog.Logger // optional
}

// columns holds the per-file resolved column indices. Selectors are
// resolved once per configuration, not per row; -1 marks an absent
// optional column.
type columns struct {
	date   int
	desc   int
	amount int
	debit  int
	credit int
}

// Parse reads the whole file and returns a report. Only an unreadable CSV
// stream or a selector that cannot be resolved is an error; bad rows are
// skipped and reported.
func (p *Parser) Parse(r io.Reader) (*Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}

	rows := records
	firstLine := 1
	var cols columns
	if p.Format.HasHeader {
		if len(records) == 0 {
			return &Report{}, nil
		}
		cols, err = resolveHeaderColumns(p.Format, records[0])
		rows = records[1:]
		firstLine = 2
	} else {
		cols, err = resolveIndexColumns(p.Format)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for i, rec := range rows {
		line := firstLine + i
		txn, skip, err := p.normalizeRow(rec, cols)
		if err != nil {
			p.Log.Warn().Int("line", line).Err(err).Msg("could not parse row")
			report.Skips = append(report.Skips, Skip{Line: line, Reason: err.Error()})
			continue
		}
		if skip != "" {
			report.Skips = append(report.Skips, Skip{Line: line, Reason: skip})
			continue
		}
		if p.Reconciler != nil && IsAmazonDescription(txn.Description) {
			if p.Reconciler.Reconcile(&txn) {
				report.Matched++
			}
		}
		report.Transactions = append(report.Transactions, txn)
	}
	return report, nil
}

// normalizeRow converts one raw row into a transaction. A non-empty skip
// reason means the row carries no monetary value and is legitimately
// uninformative (e.g. a pending-transaction marker).
func (p *Parser) normalizeRow(rec []string, cols columns) (model.Transaction, string, error) {
	var amount decimal.Decimal
	if p.Format.SplitAmount() {
		debit := cleanCurrency(field(rec, cols.debit))
		credit := cleanCurrency(field(rec, cols.credit))
		switch {
		case debit != "":
			d, err := decimal.NewFromString(debit)
			if err != nil {
				return model.Transaction{}, "", fmt.Errorf("parsing debit %q: %w", debit, err)
			}
			amount = d.Abs().Neg()
		case credit != "":
			c, err := decimal.NewFromString(credit)
			if err != nil {
				return model.Transaction{}, "", fmt.Errorf("parsing credit %q: %w", credit, err)
			}
			amount = c.Abs()
		default:
			return model.Transaction{}, "no debit or credit value", nil
		}
	} else {
		if cols.amount < 0 || cols.amount >= len(rec) {
			return model.Transaction{}, "", fmt.Errorf("missing amount field %d", cols.amount)
		}
		raw := rec[cols.amount]
		cleaned := cleanCurrency(raw)
		if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
			cleaned = "-" + cleaned[1:len(cleaned)-1]
		}
		a, err := decimal.NewFromString(cleaned)
		if err != nil {
			return model.Transaction{}, "", fmt.Errorf("parsing amount %q: %w", raw, err)
		}
		if p.Format.Invert {
			a = a.Neg()
		}
		amount = a
	}

	if cols.date >= len(rec) {
		return model.Transaction{}, "", fmt.Errorf("missing date field %d", cols.date)
	}
	dateStr := strings.TrimSpace(strings.ReplaceAll(rec[cols.date], `"`, ""))
	date, err := time.Parse(p.Format.DateFormat, dateStr)
	if err != nil {
		return model.Transaction{}, "", fmt.Errorf("parsing date %q: %w", dateStr, err)
	}

	if cols.desc >= len(rec) {
		return model.Transaction{}, "", fmt.Errorf("missing description field %d", cols.desc)
	}
	desc := strings.TrimSpace(strings.ReplaceAll(rec[cols.desc], `"`, ""))

	return model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Source:      p.Source,
	}, "", nil
}

// field returns rec[idx], or "" when the column is absent from the row.
func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// cleanCurrency strips the currency symbol, thousands separators and quote
// characters from a raw amount field.
func cleanCurrency(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// resolveHeaderColumns maps the format's named selectors onto header
// positions. Date, description and amount columns are required; the
// debit/credit pair tolerates absent columns, which read as empty.
func resolveHeaderColumns(f bankformat.Format, headers []string) (columns, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	required := func(name string) (int, error) {
		if i, ok := index[name]; ok {
			return i, nil
		}
		return 0, fmt.Errorf("column %q not found in header", name)
	}
	optional := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	cols := columns{amount: -1, debit: -1, credit: -1}
	var err error
	if cols.date, err = required(f.DateCol); err != nil {
		return columns{}, err
	}
	if cols.desc, err = required(f.DescCol); err != nil {
		return columns{}, err
	}
	if f.SplitAmount() {
		cols.debit = optional(f.DebitCol)
		cols.credit = optional(f.CreditCol)
	} else if cols.amount, err = required(f.AmountCol); err != nil {
		return columns{}, err
	}
	return cols, nil
}

// resolveIndexColumns parses the format's positional selectors.
func resolveIndexColumns(f bankformat.Format) (columns, error) {
	atoi := func(name, sel string) (int, error) {
		i, err := strconv.Atoi(sel)
		if err != nil {
			return 0, fmt.Errorf("parsing %s column index %q: %w", name, sel, err)
		}
		return i, nil
	}

	cols := columns{amount: -1, debit: -1, credit: -1}
	var err error
	if cols.date, err = atoi("date", f.DateCol); err != nil {
		return columns{}, err
	}
	if cols.desc, err = atoi("description", f.DescCol); err != nil {
		return columns{}, err
	}
	if f.SplitAmount() {
		if cols.debit, err = atoi("debit", f.DebitCol); err != nil {
			return columns{}, err
		}
		if cols.credit, err = atoi("credit", f.CreditCol); err != nil {
			return columns{}, err
		}
	} else if cols.amount, err = atoi("amount", f.AmountCol); err != nil {
		return columns{}, err
	}
	return cols, nil
}

// IsAmazonDescription reports whether a description looks like a generic
// Amazon charge that order-history reconciliation can refine.
func IsAmazonDescription(desc string) bool {
	upper := strings.ToUpper(desc)
	return strings.Contains(upper, "AMAZON.COM") || strings.Contains(upper, "AMAZON MKTPL")
}
