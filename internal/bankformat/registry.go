package bankformat

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Registry holds named bank formats in registration order.
type Registry struct {
	formats map[string]Format
	order   []string
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Format)}
}

// Register validates and inserts a format under its name. Re-registering an
// existing name overwrites it in place; last write wins.
func (r *Registry) Register(f Format) error {
	if err := f.Validate(); err != nil {
		return err
	}
	key := strings.ToLower(f.Name)
	if _, ok := r.formats[key]; !ok {
		r.order = append(r.order, key)
	}
	r.formats[key] = f
	return nil
}

// Lookup returns the format registered under name, case-insensitively.
func (r *Registry) Lookup(name string) (Format, bool) {
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

// Names returns all registered format names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.formats[key].Name)
	}
	return names
}

// DetectFromHeaders finds the first registered format (in registration
// order) whose required columns are all present in the header row.
// Headerless formats and the reserved Custom format never match.
//
// Ties between formats whose column sets overlap resolve by registration
// order, not by how many extra columns match. Existing learned mappings
// depend on this tie-break, so it stays as is.
func (r *Registry) DetectFromHeaders(headers []string) (Format, bool) {
	if len(headers) == 0 {
		return Format{}, false
	}

	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}

	for _, key := range r.order {
		f := r.formats[key]
		if !f.HasHeader || isCustom(f) {
			continue
		}
		matched := true
		for _, col := range f.requiredColumns() {
			if !present[col] {
				matched = false
				break
			}
		}
		if matched {
			return f, true
		}
	}
	return Format{}, false
}

// headerlessSampleLayout is the date layout a headerless first data row must
// satisfy for sample-based detection.
const headerlessSampleLayout = "01/02/2006"

// DetectHeaderless inspects the first data row of a file that matched no
// header-based format. If the row has at least 5 fields, field 0 parses as a
// date and field 1 as a decimal, the first registered headerless format is
// returned. A miss is a normal outcome, not an error.
func (r *Registry) DetectHeaderless(fields []string) (Format, bool) {
	if len(fields) < 5 {
		return Format{}, false
	}
	if _, err := time.Parse(headerlessSampleLayout, strings.TrimSpace(fields[0])); err != nil {
		return Format{}, false
	}
	amount := strings.ReplaceAll(strings.TrimSpace(fields[1]), ",", "")
	if _, err := decimal.NewFromString(amount); err != nil {
		return Format{}, false
	}

	for _, key := range r.order {
		if f := r.formats[key]; !f.HasHeader {
			return f, true
		}
	}
	return Format{}, false
}

// DefaultRegistry returns a registry preloaded with the built-in formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range builtins() {
		if err := r.Register(f); err != nil {
			panic("invalid built-in format " + f.Name + ": " + err.Error())
		}
	}
	return r
}

func builtins() []Format {
	return []Format{
		{
			Name:        "Apple Card",
			DateCol:     "Transaction Date",
			DescCol:     "Merchant",
			AmountCol:   "Amount (USD)",
			DateFormat:  "01/02/2006",
			Invert:      true,
			HasHeader:   true,
			Description: "Apple Card CSV export format",
		},
		{
			Name:        "Capital One",
			DateCol:     "Transaction Date",
			DescCol:     "Description",
			DebitCol:    "Debit",
			CreditCol:   "Credit",
			DateFormat:  "01/02/2006",
			HasHeader:   true,
			Description: "Capital One CSV export with separate Debit/Credit columns",
		},
		{
			Name:        "Chase",
			DateCol:     "Transaction Date",
			DescCol:     "Description",
			AmountCol:   "Amount",
			DateFormat:  "01/02/2006",
			HasHeader:   true,
			Description: "Chase Bank CSV export format",
		},
		{
			Name:        "Wells Fargo",
			DateCol:     "0",
			DescCol:     "4",
			AmountCol:   "1",
			DateFormat:  "01/02/2006",
			HasHeader:   false,
			Description: "Wells Fargo headerless CSV export (date, amount, *, blank, description)",
		},
		{
			Name:        CustomName,
			DateCol:     "Date",
			DescCol:     "Description",
			AmountCol:   "Amount",
			DateFormat:  "01/02/2006",
			HasHeader:   true,
			Description: "Custom format - manually configure column names",
		},
	}
}
