package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmazonOrder is one row of an imported Amazon order-history feed.
// IDs are assigned sequentially from 1 at load time and are stable for the
// lifetime of the loaded pool, so a Transaction.OrderID of 0 means unmatched.
type AmazonOrder struct {
	ID    int
	Date  time.Time
	Total decimal.Decimal // always non-negative
	Items string
}
