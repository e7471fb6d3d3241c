package amazon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// matchWindowDays is how long after the order date a charge may post.
const matchWindowDays = 7

// amountTolerance is the maximum difference between an order total and the
// absolute charge amount for the two to be considered the same purchase.
var amountTolerance = decimal.RequireFromString("0.01")

// Reconciler binds generic Amazon charges to orders from a loaded pool.
// Each order binds to at most one transaction for the lifetime of the pool;
// loading a new pool starts over with an empty consumed set.
type Reconciler struct {
	orders   []model.AmazonOrder
	consumed map[int]bool
}

// NewReconciler creates a reconciler over a freshly loaded order pool.
func NewReconciler(orders []model.AmazonOrder) *Reconciler {
	return &Reconciler{orders: orders, consumed: make(map[int]bool)}
}

// Orders returns the loaded pool.
func (r *Reconciler) Orders() []model.AmazonOrder {
	return r.orders
}

// Consumed reports whether an order has already been bound.
func (r *Reconciler) Consumed(id int) bool {
	return r.consumed[id]
}

// MarkConsumed pre-binds orders, used when restoring a session whose pool
// was partially matched in an earlier run.
func (r *Reconciler) MarkConsumed(ids ...int) {
	for _, id := range ids {
		r.consumed[id] = true
	}
}

// Reconcile finds the first unconsumed order whose date precedes or
// coincides with the charge by at most a week and whose total matches the
// absolute charge amount. Orders are tried in load order: first fit, not
// best fit, so near-identical orders inside the window are disambiguated
// arbitrarily by load order. On a match the transaction's description is
// replaced by the order's item list and its order id is set.
func (r *Reconciler) Reconcile(txn *model.Transaction) bool {
	amount := txn.Amount.Abs()
	for _, order := range r.orders {
		if r.consumed[order.ID] {
			continue
		}
		days := daysBetween(order.Date, txn.Date)
		if days < 0 || days > matchWindowDays {
			continue
		}
		if order.Total.Sub(amount).Abs().GreaterThanOrEqual(amountTolerance) {
			continue
		}

		r.consumed[order.ID] = true
		txn.Description = order.Items
		txn.OrderID = order.ID
		return true
	}
	return false
}

// daysBetween returns the whole calendar days from a to b, ignoring any
// time-of-day component.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
