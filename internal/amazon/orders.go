// Package amazon loads Amazon order-history feeds and reconciles generic
// Amazon charges against them.
package amazon

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// dateLayout is the order-history date format (MM/DD/YYYY).
const dateLayout = "01/02/2006"

// Columns names the order-history CSV columns to read.
type Columns struct {
	Date  string
	Total string
	Items string
}

// DefaultColumns returns the column names Amazon's export uses.
func DefaultColumns() Columns {
	return Columns{Date: "date", Total: "total", Items: "items"}
}

// LoadOrders reads a header-based order-history CSV. Rows with an empty
// date or total are skipped silently; rows that fail to parse are skipped
// with a warning. Sequence ids are assigned 1..n in file order.
func LoadOrders(r io.Reader, cols Columns, log zerolog.Logger) ([]model.AmazonOrder, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading order history CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.TrimSpace(h)] = i
	}
	get := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var orders []model.AmazonOrder
	for i, rec := range records[1:] {
		dateStr := get(rec, cols.Date)
		totalStr := strings.ReplaceAll(strings.ReplaceAll(get(rec, cols.Total), "$", ""), ",", "")
		if dateStr == "" || totalStr == "" {
			continue
		}

		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			log.Warn().Int("line", i+2).Err(err).Msg("could not parse order date")
			continue
		}
		total, err := decimal.NewFromString(totalStr)
		if err != nil {
			log.Warn().Int("line", i+2).Err(err).Msg("could not parse order total")
			continue
		}

		orders = append(orders, model.AmazonOrder{
			ID:    len(orders) + 1,
			Date:  date,
			Total: total.Abs(),
			Items: get(rec, cols.Items),
		})
	}
	return orders, nil
}
