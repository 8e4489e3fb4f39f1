package royalty

type SetRateReq struct {
	RateBps int `json:"rate_bps" validate:"gte=0,lte=10000"`
}

type RecordSaleReq struct {
	TokenID      int64 `json:"token_id" validate:"required,gt=0"`
	SalePriceWei int64 `json:"sale_price_wei" validate:"required,gt=0"`
}
