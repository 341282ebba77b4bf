package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, want := range Statuses() {
		got, err := ParseStatus(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := ParseStatus("shipped")
	require.NoError(t, err, "parsing is case-insensitive")
	assert.Equal(t, StatusShipped, got)

	_, err = ParseStatus("Returned")
	assert.Error(t, err)
}

func TestTotalsExactToTwoDecimals(t *testing.T) {
	items := []Item{
		{ProductID: 7, ProductName: "Tomatoes", Quantity: 2, Price: decimal.RequireFromString("4.50")},
		{ProductID: 9, ProductName: "Mangoes", Quantity: 1, Price: decimal.RequireFromString("10.00")},
	}

	assert.Equal(t, "19.00", ItemsSubtotal(items).StringFixed(2))
	assert.Equal(t, "29.00", Total(items).StringFixed(2))
}

func TestTotalOfEmptyItemsIsJustTheDeliveryFee(t *testing.T) {
	assert.True(t, Total(nil).Equal(DeliveryFee))
}

func TestTotalAvoidsFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style prices must not accumulate binary float error
	items := []Item{
		{Quantity: 3, Price: decimal.RequireFromString("0.10")},
		{Quantity: 1, Price: decimal.RequireFromString("0.20")},
	}
	assert.Equal(t, "0.50", ItemsSubtotal(items).StringFixed(2))
	assert.Equal(t, "10.50", Total(items).StringFixed(2))
}
