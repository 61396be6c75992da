// internal/engine/profit.go
package engine

import "math"

// ProfitInput is one profitability calculation for a unit economics
// check: sell price against landed cost and marketplace fees.
type ProfitInput struct {
	SellPrice      float64
	CostPrice      float64
	Quantity       int
	FulfillmentFee float64
	ReferralFeePct float64
}

// ProfitResult is the per-unit and total profitability breakdown. All
// money fields are rounded to cents, percentages to two decimals.
type ProfitResult struct {
	ReferralFee   float64 `json:"refFee"`
	TotalFees     float64 `json:"totalFees"`
	ProfitPerUnit float64 `json:"profitPerUnit"`
	TotalProfit   float64 `json:"totalProfit"`
	MarginPct     float64 `json:"margin"`
	ROIPct        float64 `json:"roi"`
}

// CalculateProfit computes margin and ROI for a sourcing decision.
// Zero-value quantity defaults to 1 and zero referral percentage to the
// standard 15% commission, mirroring the calculator form's defaults.
func CalculateProfit(in ProfitInput) ProfitResult {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	refPct := in.ReferralFeePct
	if refPct <= 0 {
		refPct = ReferralFeeRate * 100
	}

	refFee := in.SellPrice * refPct / 100
	totalFees := in.FulfillmentFee + refFee
	profitPerUnit := in.SellPrice - in.CostPrice - totalFees

	var margin, roi float64
	if in.SellPrice > 0 {
		margin = profitPerUnit / in.SellPrice * 100
	}
	if in.CostPrice > 0 {
		roi = profitPerUnit / in.CostPrice * 100
	}

	return ProfitResult{
		ReferralFee:   round2(refFee),
		TotalFees:     round2(totalFees),
		ProfitPerUnit: round2(profitPerUnit),
		TotalProfit:   round2(profitPerUnit * float64(qty)),
		MarginPct:     round2(margin),
		ROIPct:        round2(roi),
	}
}

// EstimateSalesFromBSR maps a best-sellers rank to a rough monthly
// sales figure using tiered rules of thumb. Zero or negative rank means
// no rank signal and estimates zero.
func EstimateSalesFromBSR(bsr int) int {
	switch {
	case bsr <= 0:
		return 0
	case bsr < 100:
		return 5000
	case bsr < 1000:
		return 1500
	case bsr < 5000:
		return 800
	case bsr < 10000:
		return 300
	case bsr < 50000:
		return 50
	default:
		return 10
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
