package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/bankformat"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")

	cfg := Default()
	cfg.Export.OutputFile = "out.xlsx"
	cfg.Formats = []FormatConfig{{
		Name:              "My Bank",
		DateColumn:        "Date",
		DescriptionColumn: "Payee",
		AmountColumn:      "Amount",
		DateFormat:        "2006-01-02",
		InvertAmounts:     true,
	}}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "date", cfg.Amazon.DateColumn)
	assert.Equal(t, "total", cfg.Amazon.TotalColumn)
	assert.Equal(t, "items", cfg.Amazon.ItemsColumn)
	assert.Equal(t, "transaction_summary.xlsx", cfg.Export.OutputFile)
	assert.Empty(t, cfg.Formats)
}

func TestRegisterFormats(t *testing.T) {
	cfg := &Config{Formats: []FormatConfig{{
		Name:              "My Bank",
		DateColumn:        "Date",
		DescriptionColumn: "Payee",
		AmountColumn:      "Amount",
	}}}

	r := bankformat.NewRegistry()
	require.NoError(t, cfg.RegisterFormats(r))

	f, ok := r.Lookup("My Bank")
	require.True(t, ok)
	assert.Equal(t, "Date", f.DateCol)
	assert.True(t, f.HasHeader)
	// Unset date formats fall back to MM/DD/YYYY.
	assert.Equal(t, "01/02/2006", f.DateFormat)
}

func TestRegisterFormats_Headerless(t *testing.T) {
	cfg := &Config{Formats: []FormatConfig{{
		Name:              "My Export",
		DateColumn:        "0",
		DescriptionColumn: "4",
		AmountColumn:      "1",
		Headerless:        true,
	}}}

	r := bankformat.NewRegistry()
	require.NoError(t, cfg.RegisterFormats(r))

	f, ok := r.Lookup("My Export")
	require.True(t, ok)
	assert.False(t, f.HasHeader)
}

func TestRegisterFormats_InvalidIsFatal(t *testing.T) {
	cfg := &Config{Formats: []FormatConfig{{
		Name:              "Broken",
		DateColumn:        "Date",
		DescriptionColumn: "Payee",
		AmountColumn:      "Amount",
		DebitColumn:       "Debit",
		CreditColumn:      "Credit",
	}}}

	err := cfg.RegisterFormats(bankformat.NewRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, err, bankformat.ErrAmountColumns)
}
