// model/royalty.go
package model

// DefaultRoyaltyBps applies to every token without an explicit override.
// 250 bps = 2.5%.
const DefaultRoyaltyBps = 250

// MaxRoyaltyBps is the upper bound for a per-token override (100%).
const MaxRoyaltyBps = 10000

// CalculateRoyalty computes salePrice * rate / 10000 with integer
// truncation toward zero.
func CalculateRoyalty(salePriceWei int64, rateBps int) int64 {
	return salePriceWei * int64(rateBps) / 10000
}

type RoyaltyRate struct {
	TokenID      int64 `json:"token_id"`
	RateBps      int   `json:"rate_bps"`
	EffectiveBps int   `json:"effective_bps"`
	HasOverride  bool  `json:"has_override"`
}

type RoyaltyBalance struct {
	Address    string `json:"address"`
	BalanceWei int64  `json:"balance_wei"`
}
