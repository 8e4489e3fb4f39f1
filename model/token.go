// model/token.go
package model

import "time"

// Supply and batch limits mirror the on-chain constants.
const (
	MaxSupply    int64 = 10000
	MaxBatchSize       = 20
)

// CooldownPeriod is the minimum wait between two public-payment mints by
// the same address. Role-based minting is exempt.
const CooldownPeriod = time.Hour

type Token struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner"`
	Creator   string    `json:"creator"`
	URI       string    `json:"uri"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerState is the singleton settings/counters row. Mutating operations
// lock it FOR UPDATE, which serializes all ledger writers.
type LedgerState struct {
	TokenCounter    int64 `json:"token_counter"`
	MintingPaused   bool  `json:"minting_paused"`
	MintPriceWei    int64 `json:"mint_price_wei"`
	PlatformPoolWei int64 `json:"platform_pool_wei"`
}
