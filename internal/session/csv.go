// Package session persists the working transaction set and the loaded
// Amazon order pool between tool invocations.
package session

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// TransactionHeader is the CSV header for transactions.csv.
const TransactionHeader = "date,description,amount,category,source,order_id"

// OrderHeader is the CSV header for amazon_orders.csv.
const OrderHeader = "order_id,date,total,items,matched"

const dateFormat = "2006-01-02"

const (
	txnNumFields = 6
	colTxnDate   = 0
	colTxnDesc   = 1
	colTxnAmount = 2
	colTxnCat    = 3
	colTxnSource = 4
	colTxnOrder  = 5
)

const (
	orderNumFields  = 5
	colOrderID      = 0
	colOrderDate    = 1
	colOrderTotal   = 2
	colOrderItems   = 3
	colOrderMatched = 4
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txnNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing file (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, txnNumFields)
	row[colTxnDate] = txn.Date.Format(dateFormat)
	row[colTxnDesc] = txn.Description
	row[colTxnAmount] = txn.Amount.String()
	row[colTxnCat] = txn.Category
	row[colTxnSource] = txn.Source
	if txn.OrderID != 0 {
		row[colTxnOrder] = strconv.Itoa(txn.OrderID)
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txnNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txnNumFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colTxnDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colTxnDate], err)
	}

	amount, err := decimal.NewFromString(record[colTxnAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colTxnAmount], err)
	}

	var orderID int
	if record[colTxnOrder] != "" {
		orderID, err = strconv.Atoi(record[colTxnOrder])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing order_id %q: %w", record[colTxnOrder], err)
		}
	}

	return model.Transaction{
		Date:        date,
		Description: record[colTxnDesc],
		Amount:      amount,
		Category:    record[colTxnCat],
		Source:      record[colTxnSource],
		OrderID:     orderID,
	}, nil
}

// WriteOrders writes the order pool (including header). The matched column
// carries the consumed set across invocations.
func WriteOrders(w io.Writer, orders []model.AmazonOrder, matched map[int]bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(OrderHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, order := range orders {
		if err := cw.Write(MarshalOrder(order, matched[order.ID])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadOrders reads the order pool and the ids already consumed.
func ReadOrders(r io.Reader) ([]model.AmazonOrder, []int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = orderNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading orders CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	var orders []model.AmazonOrder
	var consumed []int
	for i, rec := range records[1:] {
		order, isMatched, err := UnmarshalOrder(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		orders = append(orders, order)
		if isMatched {
			consumed = append(consumed, order.ID)
		}
	}
	return orders, consumed, nil
}

// MarshalOrder converts an AmazonOrder to a CSV row.
func MarshalOrder(order model.AmazonOrder, matched bool) []string {
	row := make([]string, orderNumFields)
	row[colOrderID] = strconv.Itoa(order.ID)
	row[colOrderDate] = order.Date.Format(dateFormat)
	row[colOrderTotal] = order.Total.StringFixed(2)
	row[colOrderItems] = order.Items
	row[colOrderMatched] = strconv.FormatBool(matched)
	return row
}

// UnmarshalOrder converts a CSV row to an AmazonOrder plus its matched flag.
func UnmarshalOrder(record []string) (model.AmazonOrder, bool, error) {
	if len(record) != orderNumFields {
		return model.AmazonOrder{}, false, fmt.Errorf("expected %d fields, got %d", orderNumFields, len(record))
	}

	id, err := strconv.Atoi(record[colOrderID])
	if err != nil {
		return model.AmazonOrder{}, false, fmt.Errorf("parsing order_id %q: %w", record[colOrderID], err)
	}

	date, err := time.Parse(dateFormat, record[colOrderDate])
	if err != nil {
		return model.AmazonOrder{}, false, fmt.Errorf("parsing date %q: %w", record[colOrderDate], err)
	}

	total, err := decimal.NewFromString(record[colOrderTotal])
	if err != nil {
		return model.AmazonOrder{}, false, fmt.Errorf("parsing total %q: %w", record[colOrderTotal], err)
	}

	matched, err := strconv.ParseBool(record[colOrderMatched])
	if err != nil {
		return model.AmazonOrder{}, false, fmt.Errorf("parsing matched %q: %w", record[colOrderMatched], err)
	}

	return model.AmazonOrder{
		ID:    id,
		Date:  date,
		Total: total,
		Items: record[colOrderItems],
	}, matched, nil
}
