package bankformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Validate(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{
			name:   "amount column",
			format: Format{Name: "A", DateCol: "Date", DescCol: "Desc", AmountCol: "Amount", DateFormat: "01/02/2006"},
		},
		{
			name:   "debit credit pair",
			format: Format{Name: "B", DateCol: "Date", DescCol: "Desc", DebitCol: "Debit", CreditCol: "Credit", DateFormat: "01/02/2006"},
		},
		{
			name:    "neither amount nor pair",
			format:  Format{Name: "C", DateCol: "Date", DescCol: "Desc", DateFormat: "01/02/2006"},
			wantErr: true,
		},
		{
			name:    "both amount and pair",
			format:  Format{Name: "D", DateCol: "Date", DescCol: "Desc", AmountCol: "Amount", DebitCol: "Debit", CreditCol: "Credit", DateFormat: "01/02/2006"},
			wantErr: true,
		},
		{
			name:    "half a pair",
			format:  Format{Name: "E", DateCol: "Date", DescCol: "Desc", DebitCol: "Debit", DateFormat: "01/02/2006"},
			wantErr: true,
		},
		{
			name:    "missing name",
			format:  Format{DateCol: "Date", DescCol: "Desc", AmountCol: "Amount", DateFormat: "01/02/2006"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistry_LookupCaseInsensitive(t *testing.T) {
	r := DefaultRegistry()

	f, ok := r.Lookup("chase")
	require.True(t, ok)
	assert.Equal(t, "Chase", f.Name)

	f, ok = r.Lookup("CAPITAL ONE")
	require.True(t, ok)
	assert.Equal(t, "Capital One", f.Name)

	_, ok = r.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_RegisterLastWriteWins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Format{
		Name: "Mine", DateCol: "Date", DescCol: "Desc", AmountCol: "Amount",
		DateFormat: "01/02/2006", HasHeader: true,
	}))
	require.NoError(t, r.Register(Format{
		Name: "mine", DateCol: "Posted", DescCol: "Payee", AmountCol: "Value",
		DateFormat: "2006-01-02", HasHeader: true,
	}))

	f, ok := r.Lookup("Mine")
	require.True(t, ok)
	assert.Equal(t, "Posted", f.DateCol)
	assert.Len(t, r.Names(), 1)
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := NewRegistry()
	err := r.Register(Format{Name: "Broken", DateCol: "Date", DescCol: "Desc", DateFormat: "01/02/2006"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmountColumns)
}

func TestDetectFromHeaders_Chase(t *testing.T) {
	r := DefaultRegistry()
	f, ok := r.DetectFromHeaders([]string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"})
	require.True(t, ok)
	assert.Equal(t, "Chase", f.Name)
}

func TestDetectFromHeaders_CapitalOne(t *testing.T) {
	r := DefaultRegistry()
	f, ok := r.DetectFromHeaders([]string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"})
	require.True(t, ok)
	assert.Equal(t, "Capital One", f.Name)
}

func TestDetectFromHeaders_TrimsWhitespace(t *testing.T) {
	r := DefaultRegistry()
	f, ok := r.DetectFromHeaders([]string{" Transaction Date ", "Merchant ", " Amount (USD)"})
	require.True(t, ok)
	assert.Equal(t, "Apple Card", f.Name)
}

func TestDetectFromHeaders_NoMatch(t *testing.T) {
	r := DefaultRegistry()
	_, ok := r.DetectFromHeaders([]string{"When", "What", "How Much"})
	assert.False(t, ok)
}

func TestDetectFromHeaders_SkipsCustom(t *testing.T) {
	// Custom's columns are generic enough to match many files; it must
	// never be auto-selected.
	r := DefaultRegistry()
	_, ok := r.DetectFromHeaders([]string{"Date", "Description", "Amount"})
	assert.False(t, ok)
}

func TestDetectFromHeaders_Idempotent(t *testing.T) {
	r := DefaultRegistry()
	headers := []string{"Transaction Date", "Description", "Amount"}

	first, ok1 := r.DetectFromHeaders(headers)
	second, ok2 := r.DetectFromHeaders(headers)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestDetectFromHeaders_RegistrationOrderTieBreak(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Format{
		Name: "Narrow", DateCol: "Date", DescCol: "Desc", AmountCol: "Amount",
		DateFormat: "01/02/2006", HasHeader: true,
	}))
	require.NoError(t, r.Register(Format{
		Name: "Wide", DateCol: "Date", DescCol: "Desc", AmountCol: "Amount",
		DateFormat: "01/02/2006", HasHeader: true,
	}))

	// Both formats cover the headers; the first registered wins.
	f, ok := r.DetectFromHeaders([]string{"Date", "Desc", "Amount", "Extra"})
	require.True(t, ok)
	assert.Equal(t, "Narrow", f.Name)
}

func TestDetectHeaderless_WellsFargo(t *testing.T) {
	r := DefaultRegistry()
	f, ok := r.DetectHeaderless([]string{"01/15/2024", "-54.32", "*", "", "PURCHASE AUTHORIZED ON 01/14"})
	require.True(t, ok)
	assert.Equal(t, "Wells Fargo", f.Name)
	assert.False(t, f.HasHeader)
}

func TestDetectHeaderless_ThousandsSeparator(t *testing.T) {
	r := DefaultRegistry()
	_, ok := r.DetectHeaderless([]string{"01/15/2024", "1,250.00", "*", "", "DIRECT DEPOSIT"})
	assert.True(t, ok)
}

func TestDetectHeaderless_Misses(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name   string
		fields []string
	}{
		{"too few fields", []string{"01/15/2024", "-54.32", "*", ""}},
		{"bad date", []string{"not a date", "-54.32", "*", "", "desc"}},
		{"bad amount", []string{"01/15/2024", "fifty", "*", "", "desc"}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := r.DetectHeaderless(tt.fields)
			assert.False(t, ok)
		})
	}
}

func TestDefaultRegistry_Names(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"Apple Card", "Capital One", "Chase", "Wells Fargo", "Custom"}, r.Names())
}
