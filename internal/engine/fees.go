// internal/engine/fees.go
package engine

// ReferralFeeRate is the marketplace commission applied to every sale.
const ReferralFeeRate = 0.15

// Tiered per-unit fulfillment fees by list price. The analysis pipeline
// applies this table uniformly; see FlatFulfillmentFee for the one
// alternate table the profit calculator seeds its form with. Both are
// named here so the choice stays auditable.
const (
	fulfillmentFeeBase   = 3.22 // price <= 15
	fulfillmentFeeSmall  = 4.75 // 15 < price <= 25
	fulfillmentFeeMedium = 6.10 // 25 < price <= 50
	fulfillmentFeeLarge  = 9.50 // price > 50
)

// FlatFulfillmentFee is the legacy flat-rate fulfillment estimate. Kept
// only as the profit calculator's default; the listing pipeline always
// uses the tiered table above.
const FlatFulfillmentFee = 5.40

// FulfillmentFeeForPrice returns the tiered per-unit fulfillment fee.
func FulfillmentFeeForPrice(price float64) float64 {
	switch {
	case price > 50:
		return fulfillmentFeeLarge
	case price > 25:
		return fulfillmentFeeMedium
	case price > 15:
		return fulfillmentFeeSmall
	default:
		return fulfillmentFeeBase
	}
}

// CalculateFees returns the referral + fulfillment fee estimate for a
// list price. Fees are never negative; a non-positive price yields a
// zero referral fee with the base fulfillment tier.
func CalculateFees(price float64) FeeBreakdown {
	if price < 0 {
		price = 0
	}
	return FeeBreakdown{
		ReferralFee:    price * ReferralFeeRate,
		FulfillmentFee: FulfillmentFeeForPrice(price),
	}
}
