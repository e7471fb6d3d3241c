package amazon

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrders(t *testing.T) {
	csv := "date,total,items\n" +
		"01/10/2024,23.99,1x USB cable\n" +
		"01/12/2024,\"$1,299.00\",1x Laptop stand; 1x Desk mat\n" +
		"01/15/2024,-9.99,1x Refunded widget\n"
	orders, err := LoadOrders(strings.NewReader(csv), DefaultColumns(), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, 1, orders[0].ID)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), orders[0].Date)
	assert.Equal(t, "23.99", orders[0].Total.StringFixed(2))
	assert.Equal(t, "1x USB cable", orders[0].Items)

	assert.Equal(t, 2, orders[1].ID)
	assert.Equal(t, "1299.00", orders[1].Total.StringFixed(2))

	// Totals are stored as magnitudes.
	assert.Equal(t, 3, orders[2].ID)
	assert.Equal(t, "9.99", orders[2].Total.StringFixed(2))
}

func TestLoadOrders_SkipsIncompleteRows(t *testing.T) {
	csv := "date,total,items\n" +
		",23.99,missing date\n" +
		"01/10/2024,,missing total\n" +
		"01/11/2024,5.00,kept\n"
	orders, err := LoadOrders(strings.NewReader(csv), DefaultColumns(), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "kept", orders[0].Items)
	// Ids number the kept rows, not the file rows.
	assert.Equal(t, 1, orders[0].ID)
}

func TestLoadOrders_SkipsUnparseableRows(t *testing.T) {
	csv := "date,total,items\n" +
		"not-a-date,23.99,bad date\n" +
		"01/10/2024,not-a-number,bad total\n" +
		"01/11/2024,5.00,kept\n"
	orders, err := LoadOrders(strings.NewReader(csv), DefaultColumns(), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "kept", orders[0].Items)
}

func TestLoadOrders_CustomColumns(t *testing.T) {
	csv := "Order Date,Order Total,Description\n01/10/2024,23.99,1x USB cable\n"
	cols := Columns{Date: "Order Date", Total: "Order Total", Items: "Description"}
	orders, err := LoadOrders(strings.NewReader(csv), cols, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "1x USB cable", orders[0].Items)
}

func TestLoadOrders_EmptyInput(t *testing.T) {
	orders, err := LoadOrders(strings.NewReader(""), DefaultColumns(), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, orders)

	orders, err = LoadOrders(strings.NewReader("date,total,items\n"), DefaultColumns(), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
