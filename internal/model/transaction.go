package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel category values recognized throughout the engine.
const (
	// CategoryUncategorized is assigned when no learned mapping matches.
	CategoryUncategorized = "Uncategorized"
	// CategoryIgnore excludes a transaction from every total.
	CategoryIgnore = "Ignore"
)

// Transaction is the canonical record produced from one bank CSV row.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money out, positive = money in
	Category    string          // empty until the categorization pass runs
	Source      string          // import batch tag
	OrderID     int             // matched Amazon order sequence id, 0 = none
}

// MonthKey returns the "YYYY-MM" aggregation key for the transaction.
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
