package bankformat

import (
	"errors"
	"strings"
)

// Format is a named column-mapping recipe for one bank CSV export style.
// Column selectors are header names when HasHeader is true, otherwise
// zero-based column indices held as strings ("0", "1", ...).
// Exactly one of AmountCol or the DebitCol/CreditCol pair must be set.
type Format struct {
	Name        string
	DateCol     string
	DescCol     string
	AmountCol   string
	DebitCol    string
	CreditCol   string
	DateFormat  string // Go time layout, e.g. "01/02/2006"
	Invert      bool   // source encodes expenses as positive numbers
	HasHeader   bool
	Description string
}

// ErrAmountColumns is returned when a format does not declare exactly one of
// a single amount column or a debit/credit column pair.
var ErrAmountColumns = errors.New("format requires either an amount column or a debit and credit column pair")

// Validate checks the format invariants.
func (f Format) Validate() error {
	if f.Name == "" {
		return errors.New("format requires a name")
	}
	if f.DateCol == "" || f.DescCol == "" {
		return errors.New("format requires date and description columns")
	}
	if f.DateFormat == "" {
		return errors.New("format requires a date layout")
	}
	hasAmount := f.AmountCol != ""
	hasPair := f.DebitCol != "" && f.CreditCol != ""
	if hasAmount == hasPair {
		return ErrAmountColumns
	}
	return nil
}

// SplitAmount reports whether the format uses separate debit/credit columns.
func (f Format) SplitAmount() bool {
	return f.DebitCol != "" && f.CreditCol != ""
}

// requiredColumns returns the header names that must all be present for
// header-based detection to select this format.
func (f Format) requiredColumns() []string {
	cols := []string{f.DateCol, f.DescCol}
	if f.AmountCol != "" {
		cols = append(cols, f.AmountCol)
	} else {
		cols = append(cols, f.DebitCol, f.CreditCol)
	}
	return cols
}

// CustomName is the reserved format excluded from header detection; it
// exists so the interactive layer can offer a fully manual configuration.
const CustomName = "Custom"

func isCustom(f Format) bool {
	return strings.EqualFold(f.Name, CustomName)
}
