// internal/engine/profit_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateProfit(t *testing.T) {
	r := CalculateProfit(ProfitInput{
		SellPrice:      30,
		CostPrice:      10,
		FulfillmentFee: 4.75,
	})

	assert.Equal(t, 4.5, r.ReferralFee)
	assert.Equal(t, 9.25, r.TotalFees)
	assert.Equal(t, 10.75, r.ProfitPerUnit)
	assert.Equal(t, 10.75, r.TotalProfit) // quantity defaults to 1
	assert.Equal(t, 35.83, r.MarginPct)
	assert.Equal(t, 107.5, r.ROIPct)
}

func TestCalculateProfitQuantity(t *testing.T) {
	r := CalculateProfit(ProfitInput{
		SellPrice:      20,
		CostPrice:      5,
		FulfillmentFee: 3.22,
		Quantity:       100,
	})
	assert.Equal(t, r.ProfitPerUnit*100, r.TotalProfit)
}

func TestCalculateProfitZeroPrices(t *testing.T) {
	r := CalculateProfit(ProfitInput{})
	assert.Equal(t, 0.0, r.MarginPct)
	assert.Equal(t, 0.0, r.ROIPct)
}

func TestCalculateProfitCustomReferralPct(t *testing.T) {
	r := CalculateProfit(ProfitInput{SellPrice: 100, ReferralFeePct: 8})
	assert.Equal(t, 8.0, r.ReferralFee)
}

func TestEstimateSalesFromBSR(t *testing.T) {
	tests := []struct {
		bsr  int
		want int
	}{
		{0, 0}, {-5, 0},
		{50, 5000}, {99, 5000},
		{100, 1500}, {999, 1500},
		{1000, 800}, {4999, 800},
		{5000, 300}, {9999, 300},
		{10000, 50}, {49999, 50},
		{50000, 10}, {2000000, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateSalesFromBSR(tt.bsr), "bsr %d", tt.bsr)
	}
}
